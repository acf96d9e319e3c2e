package s3store

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// fakeAPI is an in-memory S3 client returning the same typed errors the
// real service does, paginating listings two keys at a time.
type fakeAPI struct {
	objects      map[string][]byte
	contentTypes map[string]string
	listCalls    int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (f *fakeAPI) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(params.Key)] = data
	f.contentTypes[aws.ToString(params.Key)] = aws.ToString(params.ContentType)

	return &s3.PutObjectOutput{}, nil
}

func (f *fakeAPI) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}

	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeAPI) HeadObject(_ context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(params.Key)]; !ok {
		return nil, &types.NotFound{}
	}

	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeAPI) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(params.Key))

	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeAPI) ListObjectsV2(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.listCalls++

	var matched []string
	for key := range f.objects {
		if strings.HasPrefix(key, aws.ToString(params.Prefix)) {
			matched = append(matched, key)
		}
	}
	sort.Strings(matched)

	start := 0
	if params.ContinuationToken != nil {
		start, _ = strconv.Atoi(aws.ToString(params.ContinuationToken))
	}

	const pageSize = 2
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	out := &s3.ListObjectsV2Output{}
	for _, key := range matched[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	if end < len(matched) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}

	return out, nil
}

func TestPutGetRoundTrip(t *testing.T) {
	api := newFakeAPI()
	store := New(api, "agent-sessions")
	ctx := context.Background()

	if err := store.Put(ctx, "sessions/s1/session.json", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	data, found, err := store.Get(ctx, "sessions/s1/session.json")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if !bytes.Equal(data, []byte(`{"v":1}`)) {
		t.Errorf("data mismatch: %s", data)
	}
	if api.contentTypes["sessions/s1/session.json"] != "application/json" {
		t.Errorf("content type: %q", api.contentTypes["sessions/s1/session.json"])
	}
}

func TestGetMissingKey(t *testing.T) {
	store := New(newFakeAPI(), "agent-sessions")

	data, found, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("NoSuchKey must map to not-found, got %v", err)
	}
	if found || data != nil {
		t.Errorf("missing key: found=%v data=%v", found, data)
	}
}

func TestExistsAndDelete(t *testing.T) {
	api := newFakeAPI()
	store := New(api, "agent-sessions")
	ctx := context.Background()

	if ok, err := store.Exists(ctx, "k"); err != nil || ok {
		t.Fatalf("NotFound must map to false: ok=%v err=%v", ok, err)
	}

	if err := store.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ok, _ := store.Exists(ctx, "k"); !ok {
		t.Error("exists after put")
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := store.Exists(ctx, "k"); ok {
		t.Error("exists after delete")
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Errorf("deleting a missing key must succeed: %v", err)
	}
}

func TestListFollowsPagination(t *testing.T) {
	api := newFakeAPI()
	store := New(api, "agent-sessions")
	ctx := context.Background()

	keys := []string{"s/1", "s/2", "s/3", "s/4", "s/5", "other/1"}
	for _, key := range keys {
		if err := store.Put(ctx, key, []byte("x")); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	listed, err := store.List(ctx, "s/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"s/1", "s/2", "s/3", "s/4", "s/5"}
	if len(listed) != len(want) {
		t.Fatalf("listed: %v", listed)
	}
	for i := range want {
		if listed[i] != want[i] {
			t.Fatalf("order broken: got %v want %v", listed, want)
		}
	}
	// Five matching keys at two per page means three requests.
	if api.listCalls != 3 {
		t.Errorf("pagination not followed: %d list calls", api.listCalls)
	}
}
