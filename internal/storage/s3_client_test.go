package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeHead struct {
	gotKey string
	out    *s3.HeadObjectOutput
	err    error
}

func (f *fakeHead) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.gotKey = aws.ToString(params.Key)
	return f.out, f.err
}

func TestKeyFromURL(t *testing.T) {
	c := &Client{cfg: S3Config{Bucket: "images", PublicBase: "https://cdn.example.com/products"}}

	cases := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "https://cdn.example.com/products/p1/front.png", want: "p1/front.png"},
		{url: "https://images.s3.amazonaws.com/p2/side.jpg", want: "p2/side.jpg"},
		{url: "http://localhost:9000/images/p3/top.webp", want: "p3/top.webp"},
		{url: "https://other.example.com/", wantErr: true},
		{url: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := c.KeyFromURL(tc.url)
		if tc.wantErr {
			if err == nil {
				t.Errorf("KeyFromURL(%q) expected error, got %q", tc.url, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("KeyFromURL(%q): %v", tc.url, err)
			continue
		}
		if got != tc.want {
			t.Errorf("KeyFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestHeadImage(t *testing.T) {
	fake := &fakeHead{out: &s3.HeadObjectOutput{
		ContentType:   aws.String("image/png"),
		ContentLength: aws.Int64(2048),
		ETag:          aws.String(`"abc123"`),
	}}
	c := &Client{cfg: S3Config{Bucket: "images", PublicBase: "https://cdn.example.com"}, s3: fake}

	info, err := c.HeadImage(context.Background(), "https://cdn.example.com/p1/front.png")
	if err != nil {
		t.Fatalf("head image: %v", err)
	}
	if fake.gotKey != "p1/front.png" {
		t.Fatalf("key = %q", fake.gotKey)
	}
	if info.ContentType != "image/png" || info.Size != 2048 || info.ETag != "abc123" {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestHeadImage_Error(t *testing.T) {
	c := &Client{cfg: S3Config{Bucket: "images"}, s3: &fakeHead{err: errors.New("not found")}}
	if _, err := c.HeadImage(context.Background(), "https://x/y.png"); err == nil {
		t.Fatal("expected error")
	}
}
