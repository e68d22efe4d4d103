package backup

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/chordsheet/errors"
	"github.com/jsphweid/chordsheet/model"
)

type item = map[string]*dynamodb.AttributeValue

// fakeDynamo keeps items by PK like a table keyed on PK and serves scans
// in pages of two, in insertion order
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	keys   []string
	items  map[string]item
	putErr error
}

func newFake(items ...item) *fakeDynamo {
	f := &fakeDynamo{items: make(map[string]item)}
	for _, it := range items {
		f.put(it)
	}
	return f
}

func (f *fakeDynamo) put(it item) {
	pk := *it["PK"].S
	if _, ok := f.items[pk]; !ok {
		f.keys = append(f.keys, pk)
	}
	f.items[pk] = it
}

func (f *fakeDynamo) PutItemWithContext(ctx aws.Context, in *dynamodb.PutItemInput, opts ...request.Option) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.put(in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItemWithContext(ctx aws.Context, in *dynamodb.DeleteItemInput, opts ...request.Option) (*dynamodb.DeleteItemOutput, error) {
	pk := *in.Key["PK"].S
	delete(f.items, pk)
	for i, k := range f.keys {
		if k == pk {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) ScanPagesWithContext(ctx aws.Context, in *dynamodb.ScanInput, fn func(*dynamodb.ScanOutput, bool) bool, opts ...request.Option) error {
	all := make([]item, 0, len(f.keys))
	for _, k := range f.keys {
		all = append(all, f.items[k])
	}
	for i := 0; i < len(all); i += 2 {
		end := i + 2
		if end > len(all) {
			end = len(all)
		}
		if !fn(&dynamodb.ScanOutput{Items: all[i:end]}, end == len(all)) {
			return nil
		}
	}
	return nil
}

// newMirror ticks its clock one second per push
func newMirror(f *fakeDynamo) *Mirror {
	m := New(f, "sheets")
	clock := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return m
}

var created = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func testSheet(id int64, key string) model.Sheet {
	return model.Sheet{ID: id, Title: "t", Key: key, Notes: "<" + key + ">", CreatedAt: created, UpdatedAt: created}
}

func TestPushThenPull(t *testing.T) {
	sheets := []model.Sheet{
		{ID: 1, Title: "a", Key: "C", Notes: "<C>", Position: 0, CreatedAt: created, UpdatedAt: created},
		{ID: 2, Title: "b", Key: "Bb", Notes: "<Bb>m", Favorite: true, Position: 1, CreatedAt: created, UpdatedAt: created},
		{ID: 7, Title: "c", Key: "E", Notes: "<E>", Position: 2, CreatedAt: created, UpdatedAt: created},
	}

	fake := newFake()
	m := newMirror(fake)
	ctx := context.Background()

	snapshot, err := m.Push(ctx, sheets)
	require.NoError(t, err)
	assert.NotEmpty(t, snapshot)
	require.Len(t, fake.items, 3)
	assert.Equal(t, snapshot, *fake.items["1"]["Snapshot"].S)

	pulled, err := m.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, sheets, pulled)
}

func TestPushDropsSheetsMissingFromLaterPush(t *testing.T) {
	fake := newFake()
	m := newMirror(fake)
	ctx := context.Background()

	_, err := m.Push(ctx, []model.Sheet{testSheet(1, "C"), testSheet(2, "G")})
	require.NoError(t, err)
	second, err := m.Push(ctx, []model.Sheet{testSheet(1, "D")})
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, fake.keys)
	assert.Equal(t, second, *fake.items["1"]["Snapshot"].S)

	pulled, err := m.Pull(ctx)
	require.NoError(t, err)
	require.Len(t, pulled, 1)
	assert.Equal(t, int64(1), pulled[0].ID)
	assert.Equal(t, "D", pulled[0].Key)
}

func TestPullIgnoresOlderSnapshots(t *testing.T) {
	stale := toItem(testSheet(2, "G"), "old", created)
	fresh := toItem(testSheet(1, "C"), "new", created.Add(time.Hour))

	pulled, err := New(newFake(stale, fresh), "sheets").Pull(context.Background())
	require.NoError(t, err)
	require.Len(t, pulled, 1)
	assert.Equal(t, int64(1), pulled[0].ID)
}

func TestPushWrapsError(t *testing.T) {
	fake := newFake()
	fake.putErr = errors.New("throttled")
	_, err := New(fake, "sheets").Push(context.Background(), []model.Sheet{{ID: 3}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "put sheet 3")
}

func TestPullRejectsBadItems(t *testing.T) {
	corrupt := func(attr, value string) item {
		it := toItem(testSheet(4, "C"), "s", created)
		if attr == "Position" {
			it[attr] = &dynamodb.AttributeValue{N: aws.String(value)}
		} else {
			it[attr] = &dynamodb.AttributeValue{S: aws.String(value)}
		}
		return it
	}

	cases := map[string]item{
		"pk":         corrupt("PK", "not-a-number"),
		"position":   corrupt("Position", "first"),
		"created at": corrupt("CreatedAt", "yesterday"),
		"updated at": corrupt("UpdatedAt", "2024-13-45"),
		"pushed at":  corrupt("PushedAt", "soon"),
	}
	for name, it := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(newFake(it), "sheets").Pull(context.Background())
			assert.True(t, errors.IsInvalid(err), "%v", err)
		})
	}
}
