package normalizer

import "retirement-match-engine/internal/models"

// placeholders are form values that mean the user left a field unset.
var placeholders = map[string]bool{
	"":                       true,
	"optional":               true,
	"select_preference":      true,
	"select":                 true,
	"no_preference":          true,
	"no_specific_preference": true,
	"any":                    true,
	"n/a":                    true,
	"null":                   true,
}

var geoFeatureSynonyms = map[string]models.GeoFeature{
	"coast":       models.GeoFeatureCoastal,
	"coastline":   models.GeoFeatureCoastal,
	"beach":       models.GeoFeatureCoastal,
	"beaches":     models.GeoFeatureCoastal,
	"ocean":       models.GeoFeatureCoastal,
	"seaside":     models.GeoFeatureCoastal,
	"mountains":   models.GeoFeatureMountain,
	"mountainous": models.GeoFeatureMountain,
	"alpine":      models.GeoFeatureMountain,
	"islands":     models.GeoFeatureIsland,
	"lakes":       models.GeoFeatureLake,
	"lakeside":    models.GeoFeatureLake,
	"rivers":      models.GeoFeatureRiver,
	"riverside":   models.GeoFeatureRiver,
	"valleys":     models.GeoFeatureValley,
	"deserts":     models.GeoFeatureDesert,
	"forests":     models.GeoFeatureForest,
	"forested":    models.GeoFeatureForest,
	"woodland":    models.GeoFeatureForest,
	"woods":       models.GeoFeatureForest,
	"plain":       models.GeoFeaturePlains,
	"flatlands":   models.GeoFeaturePlains,
	"prairie":     models.GeoFeaturePlains,
}

var vegetationSynonyms = map[string]models.Vegetation{
	"sub_tropical":     models.VegetationSubtropical,
	"forests":          models.VegetationForest,
	"temperate_forest": models.VegetationForest,
	"woodland":         models.VegetationForest,
	"grasslands":       models.VegetationGrassland,
	"prairie":          models.VegetationGrassland,
	"savanna":          models.VegetationGrassland,
	"arid":             models.VegetationDesert,
}

var summerSynonyms = map[string]models.SummerClimate{
	"cold":     models.SummerCool,
	"moderate": models.SummerMild,
	"very_hot": models.SummerHot,
}

var winterSynonyms = map[string]models.WinterClimate{
	"freezing":  models.WinterCold,
	"very_cold": models.WinterCold,
	"chilly":    models.WinterCool,
	"warm":      models.WinterMild,
}

var humiditySynonyms = map[string]models.Humidity{
	"low":        models.HumidityDry,
	"arid":       models.HumidityDry,
	"moderate":   models.HumidityBalanced,
	"medium":     models.HumidityBalanced,
	"high":       models.HumidityHumid,
	"very_humid": models.HumidityHumid,
}

var sunshineSynonyms = map[string]models.Sunshine{
	"sunny":        models.SunshineOftenSunny,
	"very_sunny":   models.SunshineOftenSunny,
	"mostly_sunny": models.SunshineOftenSunny,
	"abundant":     models.SunshineOftenSunny,
	"high":         models.SunshineOftenSunny,
	"moderate":     models.SunshineBalanced,
	"partly_sunny": models.SunshineBalanced,
	"limited":      models.SunshineLessSunny,
	"cloudy":       models.SunshineLessSunny,
	"often_cloudy": models.SunshineLessSunny,
	"low":          models.SunshineLessSunny,
}

var precipitationSynonyms = map[string]models.Precipitation{
	"dry":         models.PrecipitationMostlyDry,
	"low":         models.PrecipitationMostlyDry,
	"arid":        models.PrecipitationMostlyDry,
	"moderate":    models.PrecipitationBalanced,
	"often_rainy": models.PrecipitationLessDry,
	"rainy":       models.PrecipitationLessDry,
	"wet":         models.PrecipitationLessDry,
	"high":        models.PrecipitationLessDry,
}

var seasonalSynonyms = map[string]models.SeasonalVariation{
	"low":              models.SeasonalMinimal,
	"warm_all_year":    models.SeasonalMinimal,
	"stable":           models.SeasonalMinimal,
	"medium":           models.SeasonalModerate,
	"high":             models.SeasonalDistinct,
	"all_seasons":      models.SeasonalDistinct,
	"distinct_seasons": models.SeasonalDistinct,
	"four_seasons":     models.SeasonalDistinct,
	"extreme":          models.SeasonalDistinct,
}

var paceSynonyms = map[string]models.PaceOfLife{
	"slow":      models.PaceRelaxed,
	"laid_back": models.PaceRelaxed,
	"medium":    models.PaceModerate,
	"balanced":  models.PaceModerate,
	"busy":      models.PaceFast,
	"hectic":    models.PaceFast,
}

var urbanRuralSynonyms = map[string]models.UrbanRural{
	"city":        models.UrbanRuralUrban,
	"small_city":  models.UrbanRuralSuburban,
	"town":        models.UrbanRuralSuburban,
	"remote":      models.UrbanRuralRural,
	"countryside": models.UrbanRuralRural,
	"village":     models.UrbanRuralRural,
}

var expatSynonyms = map[string]models.ExpatCommunity{
	"few":         models.ExpatSmall,
	"medium":      models.ExpatModerate,
	"big":         models.ExpatLarge,
	"significant": models.ExpatLarge,
}

var languageComfortSynonyms = map[string]models.LanguageComfort{
	"only_english":  models.LanguageEnglishOnly,
	"learning":      models.LanguageWillingToLearn,
	"will_learn":    models.LanguageWillingToLearn,
	"fluent":        models.LanguageComfortable,
	"multilingual":  models.LanguageComfortable,
	"already_speak": models.LanguageComfortable,
}

var englishSynonyms = map[string]models.EnglishProficiency{
	"widespread": models.EnglishHigh,
	"good":       models.EnglishHigh,
	"excellent":  models.EnglishHigh,
	"very_high":  models.EnglishHigh,
	"official":   models.EnglishNative,
	"english":    models.EnglishNative,
	"medium":     models.EnglishModerate,
	"some":       models.EnglishModerate,
	"limited":    models.EnglishLow,
	"poor":       models.EnglishLow,
	"minimal":    models.EnglishLow,
	"basic":      models.EnglishLow,
}

var qualitySynonyms = map[string]models.QualityLevel{
	"basic":      models.QualityPoor,
	"low":        models.QualityPoor,
	"functional": models.QualityModerate,
	"adequate":   models.QualityModerate,
	"medium":     models.QualityModerate,
	"high":       models.QualityGood,
	"excellent":  models.QualityGood,
	"very_good":  models.QualityGood,
}

var visaSynonyms = map[string]models.VisaPreference{
	"required":             models.VisaRetirement,
	"yes":                  models.VisaRetirement,
	"important":            models.VisaRetirement,
	"need_retirement_visa": models.VisaRetirement,
	"not_required":         models.VisaFlexible,
	"no":                   models.VisaFlexible,
	"not_important":        models.VisaFlexible,
}

var housingSynonyms = map[string]models.HousingPreference{
	"renting":     models.HousingRent,
	"purchase":    models.HousingBuy,
	"own":         models.HousingBuy,
	"buying":      models.HousingBuy,
	"either":      models.HousingBoth,
	"rent_or_buy": models.HousingBoth,
}

var sensitivitySynonyms = map[string]bool{
	"sensitive":      true,
	"very_sensitive": true,
	"yes":            true,
	"true":           true,
	"general":        false,
	"normal":         false,
	"not_sensitive":  false,
	"not_a_concern":  false,
	"no":             false,
	"false":          false,
	"no_sensitivity": false,
}

var countrySynonyms = map[string]string{
	"usa":                      "united states",
	"us":                       "united states",
	"united states of america": "united states",
	"uk":                       "united kingdom",
	"great britain":            "united kingdom",
	"england":                  "united kingdom",
}

// compoundHobbies are quick-select buttons that stand for several hobbies.
var compoundHobbies = map[string][]string{
	"walking_cycling": {"walking", "cycling", "hiking", "mountain biking"},
	"golf_tennis":     {"golf", "tennis", "pickleball", "bocce ball", "petanque"},
	"water_sports":    {"swimming", "snorkeling", "water skiing", "swimming laps", "water aerobics"},
	"water_crafts":    {"kayaking", "sailing", "boating", "canoeing", "paddleboarding"},
	"winter_sports":   {"downhill skiing", "cross-country skiing", "ice skating", "snowboarding"},
}

// hobbyAliases maps legacy short labels to the hobby they stand for.
var hobbyAliases = map[string]string{
	"skiing":               "downhill skiing",
	"cross_country_skiing": "cross-country skiing",
	"arts":                 "arts & crafts",
	"crafts":               "arts & crafts",
	"wine":                 "wine tasting",
}
