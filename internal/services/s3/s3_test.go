package s3service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	copies  []string
	failPut bool
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut {
		return nil, errors.New("access denied")
	}
	b, _ := io.ReadAll(in.Body)
	f.objects[aws.ToString(in.Key)] = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) CopyObject(_ context.Context, in *s3.CopyObjectInput, _ ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	f.copies = append(f.copies, aws.ToString(in.CopySource))
	src := strings.TrimPrefix(aws.ToString(in.CopySource), "bucket/")
	f.objects[aws.ToString(in.Key)] = f.objects[src]
	return &s3.CopyObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestService_UploadDownload(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{}}
	svc := newWithClient(fake, "bucket")
	ctx := context.Background()

	require.NoError(t, svc.UploadFile(ctx, "results/a.json", []byte(`{"ok":true}`), "application/json"))
	data, err := svc.DownloadFile(ctx, "results/a.json")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))
	assert.Equal(t, "bucket", svc.Bucket())
}

func TestService_DownloadMissing(t *testing.T) {
	svc := newWithClient(&fakeS3{objects: map[string]string{}}, "bucket")
	_, err := svc.DownloadFile(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UploadError(t *testing.T) {
	svc := newWithClient(&fakeS3{objects: map[string]string{}, failPut: true}, "bucket")
	err := svc.UploadFile(context.Background(), "k", nil, "text/plain")
	assert.ErrorContains(t, err, "access denied")
}

func TestService_MoveFile(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"batches/p1/towns.csv": "id\na"}}
	svc := newWithClient(fake, "bucket")

	require.NoError(t, svc.MoveFile(context.Background(), "batches/p1/towns.csv", "processed/p1/towns.csv"))
	assert.Equal(t, "id\na", fake.objects["processed/p1/towns.csv"])
	_, still := fake.objects["batches/p1/towns.csv"]
	assert.False(t, still)
}
