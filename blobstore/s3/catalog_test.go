package s3

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bitarray/blobstore"
)

// mockDDBClient is an in-memory DynamoDB mock for testing.
type mockDDBClient struct {
	mu    sync.RWMutex
	items map[string]map[string]types.AttributeValue // name:version -> item
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{
		items: make(map[string]map[string]types.AttributeValue),
	}
}

func (m *mockDDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := params.Item["name"].(*types.AttributeValueMemberS).Value
	version := params.Item["version"].(*types.AttributeValueMemberN).Value
	key := name + ":" + version

	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(version)" {
		if _, exists := m.items[key]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
		}
	}

	m.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name := params.ExpressionAttributeValues[":name"].(*types.AttributeValueMemberS).Value

	var items []map[string]types.AttributeValue
	for _, item := range m.items {
		if item["name"].(*types.AttributeValueMemberS).Value == name {
			items = append(items, item)
		}
	}

	// Sort descending by version (numeric strings of equal width)
	for i := 0; i < len(items)-1; i++ {
		for j := i + 1; j < len(items); j++ {
			vi := items[i]["version"].(*types.AttributeValueMemberN).Value
			vj := items[j]["version"].(*types.AttributeValueMemberN).Value
			if vi < vj {
				items[i], items[j] = items[j], items[i]
			}
		}
	}

	if params.Limit != nil && int(*params.Limit) < len(items) {
		items = items[:*params.Limit]
	}

	return &dynamodb.QueryOutput{Items: items}, nil
}

func newTestCatalog(ddb DDBClient, s3Client Client) *Catalog {
	store := NewStore(s3Client, "test-bucket", "test/")
	return NewCatalog(store, ddb, "bitarray-catalog")
}

// consumingPut registers a PutObject expectation that drains the body.
func consumingPut(m *MockS3Client) *mock.Call {
	return m.On("PutObject", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		input := args.Get(1).(*awss3.PutObjectInput)
		_, _ = io.ReadAll(input.Body)
	}).Return(&awss3.PutObjectOutput{}, nil)
}

func TestCatalog_FirstCommit(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()
	s3Client := new(MockS3Client)
	consumingPut(s3Client).Once()

	catalog := newTestCatalog(ddb, s3Client)

	version, err := catalog.Commit(ctx, "flags", []byte("payload-v1"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)

	latest, err := catalog.Latest(ctx, "flags")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), latest)
}

func TestCatalog_SequentialCommits(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()
	s3Client := new(MockS3Client)
	consumingPut(s3Client).Times(3)

	catalog := newTestCatalog(ddb, s3Client)

	for want := uint64(1); want <= 3; want++ {
		version, err := catalog.Commit(ctx, "flags", []byte("payload"))
		require.NoError(t, err)
		assert.Equal(t, want, version)
	}

	latest, err := catalog.Latest(ctx, "flags")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), latest)
}

func TestCatalog_ConcurrentCommitDetected(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()
	s3Client := new(MockS3Client)
	consumingPut(s3Client)

	catalog := newTestCatalog(ddb, s3Client)

	_, err := catalog.Commit(ctx, "flags", []byte("first"))
	require.NoError(t, err)

	// Simulate a racing writer that already claimed version 2.
	_, err = ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String("bitarray-catalog"),
		Item: map[string]types.AttributeValue{
			"name":    &types.AttributeValueMemberS{Value: "flags"},
			"version": &types.AttributeValueMemberN{Value: "2"},
			"key":     &types.AttributeValueMemberS{Value: "racer"},
		},
	})
	require.NoError(t, err)

	// A commit computed against a stale Latest would also claim version 2.
	ddbStale := &staleDDB{inner: ddb}
	staleCatalog := newTestCatalog(ddbStale, s3Client)

	_, err = staleCatalog.Commit(ctx, "flags", []byte("loser"))
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

// staleDDB answers Latest queries as if only version 1 existed.
type staleDDB struct {
	inner *mockDDBClient
}

func (s *staleDDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return s.inner.PutItem(ctx, params)
}

func (s *staleDDB) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	out, err := s.inner.Query(ctx, params)
	if err != nil || len(out.Items) == 0 {
		return out, err
	}
	return &dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			{
				"name":    params.ExpressionAttributeValues[":name"],
				"version": &types.AttributeValueMemberN{Value: "1"},
				"key":     &types.AttributeValueMemberS{Value: versionKey("flags", 1)},
			},
		},
	}, err
}

func TestCatalog_LatestMissing(t *testing.T) {
	ddb := newMockDDBClient()
	catalog := newTestCatalog(ddb, new(MockS3Client))

	_, err := catalog.Latest(context.Background(), "unknown")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestCatalog_OpenVersion(t *testing.T) {
	ddb := newMockDDBClient()
	s3Client := new(MockS3Client)
	consumingPut(s3Client)

	s3Client.On("HeadObject", mock.Anything, mock.MatchedBy(func(input *awss3.HeadObjectInput) bool {
		return *input.Key == "test/flags/v00000001.bits"
	})).Return(&awss3.HeadObjectOutput{ContentLength: aws.Int64(7)}, nil).Once()

	catalog := newTestCatalog(ddb, s3Client)

	_, err := catalog.Commit(context.Background(), "flags", []byte("payload"))
	require.NoError(t, err)

	blob, err := catalog.OpenVersion(context.Background(), "flags", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), blob.Size())
	require.NoError(t, blob.Close())
}
