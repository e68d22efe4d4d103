// Package backup mirrors chord sheets to a DynamoDB table so they can be
// restored on another device.
package backup

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/google/uuid"

	"github.com/jsphweid/chordsheet/errors"
	"github.com/jsphweid/chordsheet/logger"
	"github.com/jsphweid/chordsheet/model"
)

type Mirror struct {
	client dynamodbiface.DynamoDBAPI
	table  string
	now    func() time.Time
}

func New(client dynamodbiface.DynamoDBAPI, table string) *Mirror {
	return &Mirror{
		client: client,
		table:  table,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// NewClient creates a DynamoDB client. endpoint is only needed for a local
// DynamoDB, e.g. http://localhost:8000.
func NewClient(region, endpoint string) (dynamodbiface.DynamoDBAPI, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "create DynamoDB session")
	}
	return dynamodb.New(sess), nil
}

// Push writes every sheet to the table under a new snapshot id, then
// deletes the items of older snapshots so the table holds exactly sheets.
func (m *Mirror) Push(ctx context.Context, sheets []model.Sheet) (string, error) {
	snapshot := uuid.New().String()
	pushedAt := m.now()
	for _, s := range sheets {
		_, err := m.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(m.table),
			Item:      toItem(s, snapshot, pushedAt),
		})
		if err != nil {
			return "", errors.Wrapf(err, "put sheet %d", s.ID)
		}
	}

	pruned, err := m.prune(ctx, snapshot)
	if err != nil {
		return "", err
	}
	logger.Logger.Infow("Pushed sheets",
		"table", m.table,
		"count", len(sheets),
		"pruned", pruned,
		"snapshot", snapshot,
	)
	return snapshot, nil
}

// prune deletes every item not stamped with snapshot
func (m *Mirror) prune(ctx context.Context, snapshot string) (int, error) {
	items, err := m.scan(ctx)
	if err != nil {
		return 0, err
	}
	var pruned int
	for _, item := range items {
		if stringAttr(item, "Snapshot") == snapshot {
			continue
		}
		_, err := m.client.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(m.table),
			Key:       map[string]*dynamodb.AttributeValue{"PK": item["PK"]},
		})
		if err != nil {
			return pruned, errors.Wrapf(err, "delete stale item %s", stringAttr(item, "PK"))
		}
		pruned++
	}
	return pruned, nil
}

// Pull reads back the sheets of the newest snapshot. Items left over from
// an older push that was not fully pruned are ignored.
func (m *Mirror) Pull(ctx context.Context) ([]model.Sheet, error) {
	items, err := m.scan(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := newestSnapshot(items)
	if err != nil {
		return nil, err
	}

	res := make([]model.Sheet, 0, len(items))
	for _, item := range items {
		if stringAttr(item, "Snapshot") != latest {
			continue
		}
		s, err := fromItem(item)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	logger.Logger.Infow("Pulled sheets", "table", m.table, "count", len(res), "snapshot", latest)
	return res, nil
}

func (m *Mirror) scan(ctx context.Context) ([]map[string]*dynamodb.AttributeValue, error) {
	var items []map[string]*dynamodb.AttributeValue
	input := &dynamodb.ScanInput{TableName: aws.String(m.table)}
	err := m.client.ScanPagesWithContext(ctx, input, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		items = append(items, page.Items...)
		return true
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", m.table)
	}
	return items, nil
}

// newestSnapshot picks the snapshot with the latest PushedAt. Items without
// one count as the oldest.
func newestSnapshot(items []map[string]*dynamodb.AttributeValue) (string, error) {
	var latest string
	var latestAt time.Time
	for i, item := range items {
		at, err := timeAttr(item, "PushedAt")
		if err != nil {
			return "", err
		}
		if i == 0 || at.After(latestAt) {
			latest, latestAt = stringAttr(item, "Snapshot"), at
		}
	}
	return latest, nil
}

func toItem(s model.Sheet, snapshot string, pushedAt time.Time) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK":        {S: aws.String(strconv.FormatInt(s.ID, 10))},
		"Title":     {S: aws.String(s.Title)},
		"Key":       {S: aws.String(s.Key)},
		"Notes":     {S: aws.String(s.Notes)},
		"Favorite":  {BOOL: aws.Bool(s.Favorite)},
		"Position":  {N: aws.String(strconv.Itoa(s.Position))},
		"CreatedAt": {S: aws.String(s.CreatedAt.UTC().Format(time.RFC3339Nano))},
		"UpdatedAt": {S: aws.String(s.UpdatedAt.UTC().Format(time.RFC3339Nano))},
		"Snapshot":  {S: aws.String(snapshot)},
		"PushedAt":  {S: aws.String(pushedAt.UTC().Format(time.RFC3339Nano))},
	}
}

func fromItem(item map[string]*dynamodb.AttributeValue) (model.Sheet, error) {
	var s model.Sheet

	pk := stringAttr(item, "PK")
	id, err := strconv.ParseInt(pk, 10, 64)
	if err != nil {
		return s, errors.Wrapf(errors.ErrInvalidRequest, "bad PK %q", pk)
	}
	s.ID = id
	s.Title = stringAttr(item, "Title")
	s.Key = stringAttr(item, "Key")
	s.Notes = stringAttr(item, "Notes")
	if v, ok := item["Favorite"]; ok && v.BOOL != nil {
		s.Favorite = *v.BOOL
	}
	if v, ok := item["Position"]; ok && v.N != nil {
		pos, err := strconv.Atoi(*v.N)
		if err != nil {
			return s, errors.Wrapf(errors.ErrInvalidRequest, "sheet %s: bad Position %q", pk, *v.N)
		}
		s.Position = pos
	}
	if s.CreatedAt, err = timeAttr(item, "CreatedAt"); err != nil {
		return s, errors.Wrapf(err, "sheet %s", pk)
	}
	if s.UpdatedAt, err = timeAttr(item, "UpdatedAt"); err != nil {
		return s, errors.Wrapf(err, "sheet %s", pk)
	}
	return s, nil
}

func stringAttr(item map[string]*dynamodb.AttributeValue, name string) string {
	if v, ok := item[name]; ok && v.S != nil {
		return *v.S
	}
	return ""
}

// timeAttr parses an RFC 3339 attribute. A missing attribute is the zero
// time; an unparsable one is an error.
func timeAttr(item map[string]*dynamodb.AttributeValue, name string) (time.Time, error) {
	raw := stringAttr(item, name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrInvalidRequest, "bad %s %q", name, raw)
	}
	return t, nil
}
