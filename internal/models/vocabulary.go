// Package models defines the data structures for the retirement match engine.
package models

import (
	"strings"
	"unicode"
)

// GeoFeature is a canonical geographic feature of a location.
type GeoFeature string

const (
	GeoFeatureCoastal  GeoFeature = "coastal"
	GeoFeatureMountain GeoFeature = "mountain"
	GeoFeatureIsland   GeoFeature = "island"
	GeoFeatureLake     GeoFeature = "lake"
	GeoFeatureRiver    GeoFeature = "river"
	GeoFeatureValley   GeoFeature = "valley"
	GeoFeatureDesert   GeoFeature = "desert"
	GeoFeatureForest   GeoFeature = "forest"
	GeoFeaturePlains   GeoFeature = "plains"
)

// ValidGeoFeatures returns all valid geographic feature values.
func ValidGeoFeatures() []GeoFeature {
	return []GeoFeature{
		GeoFeatureCoastal,
		GeoFeatureMountain,
		GeoFeatureIsland,
		GeoFeatureLake,
		GeoFeatureRiver,
		GeoFeatureValley,
		GeoFeatureDesert,
		GeoFeatureForest,
		GeoFeaturePlains,
	}
}

// IsValid checks if the geographic feature is valid.
func (g GeoFeature) IsValid() bool { return oneOf(g, ValidGeoFeatures()) }

// Vegetation is a canonical vegetation type.
type Vegetation string

const (
	VegetationTropical      Vegetation = "tropical"
	VegetationSubtropical   Vegetation = "subtropical"
	VegetationMediterranean Vegetation = "mediterranean"
	VegetationForest        Vegetation = "forest"
	VegetationGrassland     Vegetation = "grassland"
	VegetationDesert        Vegetation = "desert"
)

// ValidVegetationTypes returns all valid vegetation values.
func ValidVegetationTypes() []Vegetation {
	return []Vegetation{
		VegetationTropical,
		VegetationSubtropical,
		VegetationMediterranean,
		VegetationForest,
		VegetationGrassland,
		VegetationDesert,
	}
}

// IsValid checks if the vegetation type is valid.
func (v Vegetation) IsValid() bool { return oneOf(v, ValidVegetationTypes()) }

// SummerClimate is an ordered summer temperature band.
type SummerClimate string

const (
	SummerCool SummerClimate = "cool"
	SummerMild SummerClimate = "mild"
	SummerWarm SummerClimate = "warm"
	SummerHot  SummerClimate = "hot"
)

// ValidSummerClimates returns the summer bands from coolest to hottest.
func ValidSummerClimates() []SummerClimate {
	return []SummerClimate{SummerCool, SummerMild, SummerWarm, SummerHot}
}

// IsValid checks if the summer climate is valid.
func (s SummerClimate) IsValid() bool { return oneOf(s, ValidSummerClimates()) }

// WinterClimate is an ordered winter temperature band.
type WinterClimate string

const (
	WinterCold WinterClimate = "cold"
	WinterCool WinterClimate = "cool"
	WinterMild WinterClimate = "mild"
)

// ValidWinterClimates returns the winter bands from coldest to mildest.
func ValidWinterClimates() []WinterClimate {
	return []WinterClimate{WinterCold, WinterCool, WinterMild}
}

// IsValid checks if the winter climate is valid.
func (w WinterClimate) IsValid() bool { return oneOf(w, ValidWinterClimates()) }

// Humidity is a canonical humidity level.
type Humidity string

const (
	HumidityDry      Humidity = "dry"
	HumidityBalanced Humidity = "balanced"
	HumidityHumid    Humidity = "humid"
)

// ValidHumidityLevels returns all valid humidity values.
func ValidHumidityLevels() []Humidity {
	return []Humidity{HumidityDry, HumidityBalanced, HumidityHumid}
}

// IsValid checks if the humidity level is valid.
func (h Humidity) IsValid() bool { return oneOf(h, ValidHumidityLevels()) }

// Sunshine is a canonical sunshine level.
type Sunshine string

const (
	SunshineOftenSunny Sunshine = "often_sunny"
	SunshineBalanced   Sunshine = "balanced"
	SunshineLessSunny  Sunshine = "less_sunny"
)

// ValidSunshineLevels returns all valid sunshine values.
func ValidSunshineLevels() []Sunshine {
	return []Sunshine{SunshineOftenSunny, SunshineBalanced, SunshineLessSunny}
}

// IsValid checks if the sunshine level is valid.
func (s Sunshine) IsValid() bool { return oneOf(s, ValidSunshineLevels()) }

// Precipitation is a canonical precipitation level.
type Precipitation string

const (
	PrecipitationMostlyDry Precipitation = "mostly_dry"
	PrecipitationBalanced  Precipitation = "balanced"
	PrecipitationLessDry   Precipitation = "less_dry"
)

// ValidPrecipitationLevels returns all valid precipitation values.
func ValidPrecipitationLevels() []Precipitation {
	return []Precipitation{PrecipitationMostlyDry, PrecipitationBalanced, PrecipitationLessDry}
}

// IsValid checks if the precipitation level is valid.
func (p Precipitation) IsValid() bool { return oneOf(p, ValidPrecipitationLevels()) }

// SeasonalVariation describes how distinct the seasons are.
type SeasonalVariation string

const (
	SeasonalMinimal  SeasonalVariation = "minimal"
	SeasonalModerate SeasonalVariation = "moderate"
	SeasonalDistinct SeasonalVariation = "distinct"
)

// ValidSeasonalVariations returns all valid seasonal variation values.
func ValidSeasonalVariations() []SeasonalVariation {
	return []SeasonalVariation{SeasonalMinimal, SeasonalModerate, SeasonalDistinct}
}

// IsValid checks if the seasonal variation is valid.
func (s SeasonalVariation) IsValid() bool { return oneOf(s, ValidSeasonalVariations()) }

// PaceOfLife is an ordered pace-of-life level.
type PaceOfLife string

const (
	PaceRelaxed  PaceOfLife = "relaxed"
	PaceModerate PaceOfLife = "moderate"
	PaceFast     PaceOfLife = "fast"
)

// ValidPaceOfLife returns the pace levels from slowest to fastest.
func ValidPaceOfLife() []PaceOfLife {
	return []PaceOfLife{PaceRelaxed, PaceModerate, PaceFast}
}

// IsValid checks if the pace of life is valid.
func (p PaceOfLife) IsValid() bool { return oneOf(p, ValidPaceOfLife()) }

// UrbanRural is an ordered settlement character.
type UrbanRural string

const (
	UrbanRuralUrban    UrbanRural = "urban"
	UrbanRuralSuburban UrbanRural = "suburban"
	UrbanRuralRural    UrbanRural = "rural"
)

// ValidUrbanRural returns the settlement characters from urban to rural.
func ValidUrbanRural() []UrbanRural {
	return []UrbanRural{UrbanRuralUrban, UrbanRuralSuburban, UrbanRuralRural}
}

// IsValid checks if the urban/rural character is valid.
func (u UrbanRural) IsValid() bool { return oneOf(u, ValidUrbanRural()) }

// ExpatCommunity is an ordered expat community size.
type ExpatCommunity string

const (
	ExpatSmall    ExpatCommunity = "small"
	ExpatModerate ExpatCommunity = "moderate"
	ExpatLarge    ExpatCommunity = "large"
)

// ValidExpatCommunities returns the community sizes from smallest to largest.
func ValidExpatCommunities() []ExpatCommunity {
	return []ExpatCommunity{ExpatSmall, ExpatModerate, ExpatLarge}
}

// IsValid checks if the expat community size is valid.
func (e ExpatCommunity) IsValid() bool { return oneOf(e, ValidExpatCommunities()) }

// LanguageComfort is how a user feels about living in a non-English country.
type LanguageComfort string

const (
	LanguageEnglishOnly    LanguageComfort = "english_only"
	LanguageWillingToLearn LanguageComfort = "willing_to_learn"
	LanguageComfortable    LanguageComfort = "comfortable"
)

// ValidLanguageComforts returns all valid language comfort values.
func ValidLanguageComforts() []LanguageComfort {
	return []LanguageComfort{LanguageEnglishOnly, LanguageWillingToLearn, LanguageComfortable}
}

// IsValid checks if the language comfort is valid.
func (l LanguageComfort) IsValid() bool { return oneOf(l, ValidLanguageComforts()) }

// EnglishProficiency is how widely English is spoken at a location.
type EnglishProficiency string

const (
	EnglishLow      EnglishProficiency = "low"
	EnglishModerate EnglishProficiency = "moderate"
	EnglishHigh     EnglishProficiency = "high"
	EnglishNative   EnglishProficiency = "native"
)

// ValidEnglishProficiencies returns the proficiency levels from lowest to native.
func ValidEnglishProficiencies() []EnglishProficiency {
	return []EnglishProficiency{EnglishLow, EnglishModerate, EnglishHigh, EnglishNative}
}

// IsValid checks if the english proficiency is valid.
func (e EnglishProficiency) IsValid() bool { return oneOf(e, ValidEnglishProficiencies()) }

// QualityLevel is an ordered quality bucket used for healthcare, safety and
// political stability.
type QualityLevel string

const (
	QualityPoor     QualityLevel = "poor"
	QualityModerate QualityLevel = "moderate"
	QualityGood     QualityLevel = "good"
)

// ValidQualityLevels returns the quality buckets from worst to best.
func ValidQualityLevels() []QualityLevel {
	return []QualityLevel{QualityPoor, QualityModerate, QualityGood}
}

// IsValid checks if the quality level is valid.
func (q QualityLevel) IsValid() bool { return oneOf(q, ValidQualityLevels()) }

// VisaPreference states whether the user needs a retirement visa.
type VisaPreference string

const (
	VisaRetirement VisaPreference = "retirement_visa"
	VisaFlexible   VisaPreference = "flexible"
)

// ValidVisaPreferences returns all valid visa preference values.
func ValidVisaPreferences() []VisaPreference {
	return []VisaPreference{VisaRetirement, VisaFlexible}
}

// IsValid checks if the visa preference is valid.
func (v VisaPreference) IsValid() bool { return oneOf(v, ValidVisaPreferences()) }

// HousingPreference states whether the user plans to rent or buy.
type HousingPreference string

const (
	HousingRent HousingPreference = "rent"
	HousingBuy  HousingPreference = "buy"
	HousingBoth HousingPreference = "both"
)

// ValidHousingPreferences returns all valid housing preference values.
func ValidHousingPreferences() []HousingPreference {
	return []HousingPreference{HousingRent, HousingBuy, HousingBoth}
}

// IsValid checks if the housing preference is valid.
func (h HousingPreference) IsValid() bool { return oneOf(h, ValidHousingPreferences()) }

// HobbyKey returns the key two hobby labels are compared by. Case, whitespace
// and punctuation are ignored, so "Mountain Biking" and "mountain-biking"
// share a key.
func HobbyKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Ordinal returns the position of v in an ordered vocabulary, or -1.
func Ordinal[T comparable](v T, ordered []T) int {
	for i, o := range ordered {
		if o == v {
			return i
		}
	}
	return -1
}

func oneOf[T comparable](v T, valid []T) bool {
	return Ordinal(v, valid) >= 0
}
