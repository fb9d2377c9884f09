package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/bitarray/blobstore"
)

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// ErrConcurrentModification is returned when a concurrent commit is detected.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// Catalog tracks versioned bit array snapshots in S3 with DynamoDB holding
// the atomic latest-version pointer. S3 has no compare-and-swap, so
// concurrent writers racing on a plain "latest" object could lose commits;
// the DynamoDB conditional write makes version allocation atomic.
//
// Table schema:
//   - Partition key: name (string) - the logical snapshot name
//   - Sort key: version (number) - monotonically increasing version
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name bitarray-catalog \
//	  --attribute-definitions AttributeName=name,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=name,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type Catalog struct {
	store     *Store
	ddbClient DDBClient
	tableName string
}

// NewCatalog creates a catalog over the given store and DynamoDB table.
func NewCatalog(store *Store, ddbClient DDBClient, tableName string) *Catalog {
	return &Catalog{
		store:     store,
		ddbClient: ddbClient,
		tableName: tableName,
	}
}

func versionKey(name string, version uint64) string {
	return fmt.Sprintf("%s/v%08d.bits", name, version)
}

// Commit stores data as the next version of the named snapshot and returns
// the version it was assigned. A racing writer that grabs the same version
// first causes ErrConcurrentModification; the caller may retry.
func (c *Catalog) Commit(ctx context.Context, name string, data []byte) (uint64, error) {
	current, err := c.Latest(ctx, name)
	if err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		return 0, err
	}
	next := current + 1

	key := versionKey(name, next)
	if err := c.store.Put(ctx, key, data); err != nil {
		return 0, fmt.Errorf("put snapshot object: %w", err)
	}

	// Conditional put: only succeed if this version doesn't exist yet.
	_, err = c.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			"name":    &types.AttributeValueMemberS{Value: name},
			"version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", next)},
			"key":     &types.AttributeValueMemberS{Value: key},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentModification
		}
		return 0, fmt.Errorf("commit version to DynamoDB: %w", err)
	}

	return next, nil
}

// Latest returns the highest committed version of the named snapshot.
// It returns blobstore.ErrNotFound when no version has been committed.
func (c *Catalog) Latest(ctx context.Context, name string) (uint64, error) {
	version, _, err := c.latestItem(ctx, name)
	return version, err
}

// OpenLatest opens the most recently committed version of the named
// snapshot for reading.
func (c *Catalog) OpenLatest(ctx context.Context, name string) (blobstore.Blob, error) {
	_, key, err := c.latestItem(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.store.Open(ctx, key)
}

// OpenVersion opens a specific committed version.
func (c *Catalog) OpenVersion(ctx context.Context, name string, version uint64) (blobstore.Blob, error) {
	return c.store.Open(ctx, versionKey(name, version))
}

func (c *Catalog) latestItem(ctx context.Context, name string) (uint64, string, error) {
	resp, err := c.ddbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("#n = :name"),
		ExpressionAttributeNames: map[string]string{
			"#n": "name",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name": &types.AttributeValueMemberS{Value: name},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query DynamoDB: %w", err)
	}

	if len(resp.Items) == 0 {
		return 0, "", blobstore.ErrNotFound
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in DynamoDB")
	}
	keyAttr, ok := item["key"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid key attribute in DynamoDB")
	}

	var version uint64
	if _, err := fmt.Sscanf(versionAttr.Value, "%d", &version); err != nil {
		return 0, "", fmt.Errorf("parse version: %w", err)
	}

	return version, keyAttr.Value, nil
}
