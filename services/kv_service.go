package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"trueshot_server/models"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// KVStore is the namespaced key-value persistence contract every service works
// against. Get returns false when the key is absent or its stored value was
// unreadable; unreadable entries are deleted and reset rather than surfaced.
type KVStore interface {
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Remove(ctx context.Context, key string) error
}

// kvEnvelope wraps every persisted value with a schema version so reads can
// validate structurally instead of sniffing strings.
type kvEnvelope struct {
	V    int             `json:"v"`
	Data json.RawMessage `json:"data"`
}

const kvSchemaVersion = 1

// kvItem is the DynamoDB row shape: the namespaced key, the enveloped JSON
// value and a write timestamp.
type kvItem struct {
	Key       string `dynamodbav:"k"`
	Value     string `dynamodbav:"value"`
	UpdatedAt string `dynamodbav:"updatedAt"`
}

// encodeEnvelope wraps a value in the current envelope version.
func encodeEnvelope(value interface{}) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(kvEnvelope{V: kvSchemaVersion, Data: data})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeEnvelope validates the envelope version and unmarshals its payload.
func decodeEnvelope(raw string, out interface{}) error {
	var env kvEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return fmt.Errorf("invalid envelope: %w", err)
	}
	if env.V != kvSchemaVersion {
		return fmt.Errorf("unsupported envelope version %d", env.V)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("envelope payload does not match expected shape: %w", err)
	}
	return nil
}

// DynamoKV stores envelopes as JSON strings in a single DynamoDB table keyed by "k".
type DynamoKV struct {
	Client *dynamodb.Client
	Table  string
}

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient() *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// NewDynamoKV returns a DynamoKV bound to the configured table, defaulting to
// models.KeyValueTable when KV_TABLE_NAME is unset.
func NewDynamoKV(client *dynamodb.Client) *DynamoKV {
	table := os.Getenv("KV_TABLE_NAME")
	if table == "" {
		table = models.KeyValueTable
	}
	return &DynamoKV{Client: client, Table: table}
}

func (kv *DynamoKV) itemKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"k": &types.AttributeValueMemberS{Value: key},
	}
}

// Get reads and validates a stored envelope. A missing key returns (false, nil).
// A corrupt or wrong-version entry is self-healed: the key is deleted, the miss
// is logged, and the caller proceeds with its empty default.
func (kv *DynamoKV) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	output, err := kv.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &kv.Table,
		Key:       kv.itemKey(key),
	})
	if err != nil {
		log.Printf("❌ Failed to get key '%s': %v", key, err)
		return false, err
	}
	if output.Item == nil {
		return false, nil
	}

	var item kvItem
	if err := attributevalue.UnmarshalMap(output.Item, &item); err != nil {
		log.Printf("⚠️ Unreadable item at key '%s', resetting: %v", key, err)
		kv.selfHeal(ctx, key)
		return false, nil
	}
	if err := decodeEnvelope(item.Value, out); err != nil {
		log.Printf("⚠️ Corrupt entry at key '%s', resetting: %v", key, err)
		kv.selfHeal(ctx, key)
		return false, nil
	}
	return true, nil
}

// Set writes value wrapped in the current envelope version.
func (kv *DynamoKV) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := encodeEnvelope(value)
	if err != nil {
		log.Printf("❌ Failed to marshal value for key '%s': %v", key, err)
		return err
	}

	marshaledItem, err := attributevalue.MarshalMap(kvItem{
		Key:       key,
		Value:     raw,
		UpdatedAt: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = kv.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &kv.Table,
		Item:      marshaledItem,
	})
	if err != nil {
		log.Printf("❌ Failed to put key '%s': %v", key, err)
		return err
	}
	return nil
}

// Remove deletes a key. Removing an absent key is not an error.
func (kv *DynamoKV) Remove(ctx context.Context, key string) error {
	_, err := kv.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &kv.Table,
		Key:       kv.itemKey(key),
	})
	if err != nil {
		log.Printf("❌ Failed to delete key '%s': %v", key, err)
		return err
	}
	return nil
}

// selfHeal drops an unreadable entry so the next write starts clean. Best
// effort: a failed delete only logs, the read already returned the default.
func (kv *DynamoKV) selfHeal(ctx context.Context, key string) {
	if _, err := kv.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &kv.Table,
		Key:       kv.itemKey(key),
	}); err != nil {
		log.Printf("⚠️ Self-heal delete failed for key '%s': %v", key, err)
	}
}
