package archive

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		b, _ := io.ReadAll(in.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestKey(t *testing.T) {
	cases := []struct {
		prefix string
		want   string
	}{
		{"", "run.csv"},
		{"runs", "runs/run.csv"},
		{"/runs/", "runs/run.csv"},
		{"bench/2025", "bench/2025/run.csv"},
	}
	for _, tc := range cases {
		a := newS3Archive(&fakeS3{}, "b", tc.prefix)
		if got := a.Key("run.csv"); got != tc.want {
			t.Fatalf("prefix %q: got %q, want %q", tc.prefix, got, tc.want)
		}
	}
}

func TestUpload(t *testing.T) {
	f := &fakeS3{}
	a := newS3Archive(f, "hvac-bench", "runs/")

	key, err := a.Upload(context.Background(), "out.csv", strings.NewReader("timestamp\n"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if key != "runs/out.csv" {
		t.Fatalf("key = %q", key)
	}
	if aws.ToString(f.in.Bucket) != "hvac-bench" || aws.ToString(f.in.Key) != "runs/out.csv" {
		t.Fatalf("unexpected input: %+v", f.in)
	}
	if aws.ToString(f.in.ContentType) != "text/csv" || f.body != "timestamp\n" {
		t.Fatalf("unexpected body/content type: %q %q", aws.ToString(f.in.ContentType), f.body)
	}
}

func TestUpload_Error(t *testing.T) {
	a := newS3Archive(&fakeS3{err: errors.New("access denied")}, "b", "")
	_, err := a.Upload(context.Background(), "x.csv", strings.NewReader(""))
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
