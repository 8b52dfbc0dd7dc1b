package entries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/metabolic-health/coach/store"
)

var chronological = store.SortStage(
	&store.Sort{Attribute: "timestamp", Ascending: true},
	&store.Sort{Attribute: "createdAt", Ascending: true},
)

const (
	metricEntriesCollectionName = "metricEntries"
	foodEntriesCollectionName   = "foodEntries"
	macroTargetsCollectionName  = "macroTargets"
	usersCollectionName         = "users"
)

func NewRepository(db *mongo.Database, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		metrics: db.Collection(metricEntriesCollectionName),
		foods:   db.Collection(foodEntriesCollectionName),
		targets: db.Collection(macroTargetsCollectionName),
		users:   db.Collection(usersCollectionName),
		logger:  logger,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type repository struct {
	metrics *mongo.Collection
	foods   *mongo.Collection
	targets *mongo.Collection
	users   *mongo.Collection
	logger  *zap.SugaredLogger
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.metrics.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "type", Value: 1},
				{Key: "timestamp", Value: 1},
			},
			Options: options.Index().
				SetBackground(true).
				SetName("UserTypeTimestamp"),
		},
	})
	if err != nil {
		return fmt.Errorf("unable to create metric entry indexes: %w", err)
	}

	_, err = r.foods.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "timestamp", Value: 1},
			},
			Options: options.Index().
				SetBackground(true).
				SetName("UserTimestamp"),
		},
	})
	if err != nil {
		return fmt.Errorf("unable to create food entry indexes: %w", err)
	}

	_, err = r.targets.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
			},
			Options: options.Index().
				SetBackground(true).
				SetUnique(true).
				SetName("UniqueUserTarget"),
		},
	})
	if err != nil {
		return fmt.Errorf("unable to create macro target indexes: %w", err)
	}

	_, err = r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "coachId", Value: 1},
			},
			Options: options.Index().
				SetBackground(true).
				SetName("Coach"),
		},
	})
	return err
}

func (r *repository) ListMetricEntries(ctx context.Context, filter Filter) ([]MetricEntry, error) {
	selector := metricSelector(filter)
	opts := options.Find().SetSort(chronological)

	cursor, err := r.metrics.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing metric entries: %w", err)
	}

	docs, err := decodeEach[MetricEntryDocument](ctx, cursor, r.metrics.Name(), r.logger)
	if err != nil {
		return nil, fmt.Errorf("error decoding metric entries: %w", err)
	}

	result := make([]MetricEntry, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.ToMetricEntry())
	}
	return result, nil
}

func (r *repository) ListFoodEntries(ctx context.Context, filter Filter) ([]FoodEntry, error) {
	selector := timeRangeSelector(filter)
	opts := options.Find().SetSort(chronological)

	cursor, err := r.foods.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing food entries: %w", err)
	}

	docs, err := decodeEach[FoodEntryDocument](ctx, cursor, r.foods.Name(), r.logger)
	if err != nil {
		return nil, fmt.Errorf("error decoding food entries: %w", err)
	}

	result := make([]FoodEntry, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.ToFoodEntry())
	}
	return result, nil
}

func (r *repository) GetMacroTargets(ctx context.Context, userIds []string) (map[string]MacroTarget, error) {
	selector := bson.M{}
	if len(userIds) > 0 {
		selector["userId"] = bson.M{"$in": userIds}
	}

	cursor, err := r.targets.Find(ctx, selector)
	if err != nil {
		return nil, fmt.Errorf("error listing macro targets: %w", err)
	}

	docs, err := decodeEach[MacroTarget](ctx, cursor, r.targets.Name(), r.logger)
	if err != nil {
		return nil, fmt.Errorf("error decoding macro targets: %w", err)
	}

	result := make(map[string]MacroTarget, len(docs))
	for _, doc := range docs {
		result[doc.UserId] = doc
	}
	return result, nil
}

func (r *repository) ListUsers(ctx context.Context, filter UserFilter) ([]User, error) {
	selector := bson.M{}
	if filter.CoachId != nil {
		selector["coachId"] = *filter.CoachId
	}

	cursor, err := r.users.Find(ctx, selector, options.Find().SetSort(store.SortStage()))
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	docs, err := decodeEach[UserDocument](ctx, cursor, r.users.Name(), r.logger)
	if err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}

	result := make([]User, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.ToUser())
	}
	return result, nil
}

func (r *repository) GetUser(ctx context.Context, userId string) (*User, error) {
	doc := UserDocument{}
	err := r.users.FindOne(ctx, bson.M{"_id": userId}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	user := doc.ToUser()
	return &user, nil
}

func timeRangeSelector(filter Filter) bson.M {
	selector := bson.M{}
	if len(filter.UserIds) > 0 {
		selector["userId"] = bson.M{"$in": filter.UserIds}
	}
	timestamp := bson.M{}
	if filter.From != nil {
		timestamp["$gte"] = *filter.From
	}
	if filter.To != nil {
		timestamp["$lte"] = *filter.To
	}
	if len(timestamp) > 0 {
		selector["timestamp"] = timestamp
	}
	return selector
}

func metricSelector(filter Filter) bson.M {
	selector := timeRangeSelector(filter)
	if len(filter.Types) > 0 {
		selector["type"] = bson.M{"$in": filter.Types}
	}
	return selector
}

// MetricEntryDocument is the stored shape of a metric entry.
type MetricEntryDocument struct {
	Id        bson.RawValue `bson:"_id,omitempty"`
	UserId    string        `bson:"userId"`
	Type      MetricType    `bson:"type"`
	Timestamp time.Time     `bson:"timestamp"`
	CreatedAt time.Time     `bson:"createdAt"`
	ValueJson bson.RawValue `bson:"valueJson"`
	Source    Source        `bson:"source"`
}

func (d MetricEntryDocument) ToMetricEntry() MetricEntry {
	return MetricEntry{
		Id:        documentId(d.Id),
		UserId:    d.UserId,
		Type:      d.Type,
		Timestamp: d.Timestamp,
		CreatedAt: d.CreatedAt,
		Value:     ParseMetricValue(d.Type, documentMap(d.ValueJson)),
		Source:    d.Source,
	}
}

type FoodEntryDocument struct {
	Id                  bson.RawValue `bson:"_id,omitempty"`
	UserId              string        `bson:"userId"`
	Timestamp           time.Time     `bson:"timestamp"`
	AiOutputJson        bson.RawValue `bson:"aiOutputJson"`
	UserCorrectionsJson bson.RawValue `bson:"userCorrectionsJson"`
}

func (d FoodEntryDocument) ToFoodEntry() FoodEntry {
	return FoodEntry{
		Id:              documentId(d.Id),
		UserId:          d.UserId,
		Timestamp:       d.Timestamp,
		AiOutput:        documentMap(d.AiOutputJson),
		UserCorrections: documentMap(d.UserCorrectionsJson),
	}
}

type UserDocument struct {
	Id          string    `bson:"_id"`
	CoachId     string    `bson:"coachId,omitempty"`
	CreatedAt   time.Time `bson:"createdAt"`
	DateOfBirth *string   `bson:"dateOfBirth,omitempty"`
	Timezone    string    `bson:"timezone,omitempty"`
}

func (d UserDocument) ToUser() User {
	return User{
		Id:          d.Id,
		CoachId:     d.CoachId,
		CreatedAt:   d.CreatedAt,
		DateOfBirth: d.DateOfBirth,
		Timezone:    d.Timezone,
	}
}

// decodeEach decodes the documents of cursor one at a time. A document that does
// not fit T is logged and skipped, the rest of the result is kept.
func decodeEach[T any](ctx context.Context, cursor *mongo.Cursor, collection string, logger *zap.SugaredLogger) ([]T, error) {
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			logger.Warnw("skipping undecodable document", "collection", collection, "id", documentId(cursor.Current.Lookup("_id")), "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// documentId renders object ids as hex and string ids as they are.
func documentId(id bson.RawValue) string {
	switch id.Type {
	case bson.TypeObjectID:
		return id.ObjectID().Hex()
	case bson.TypeString:
		return id.StringValue()
	case 0:
		return ""
	}
	return id.String()
}

// documentMap reads a JSON payload stored either as an embedded document or as a
// JSON string. Missing, null and malformed payloads return nil so a corrupt record
// degrades instead of failing the whole query.
func documentMap(value bson.RawValue) map[string]interface{} {
	switch value.Type {
	case bson.TypeEmbeddedDocument:
		doc := bson.M{}
		if err := value.Unmarshal(&doc); err == nil {
			return toMap(doc)
		}
	case bson.TypeString:
		doc := map[string]interface{}{}
		if err := json.Unmarshal([]byte(value.StringValue()), &doc); err == nil {
			return doc
		}
	}
	return nil
}

// toMap converts nested bson documents to plain maps so payload decoding does not
// depend on driver types. A nil document stays nil.
func toMap(doc bson.M) map[string]interface{} {
	if doc == nil {
		return nil
	}
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		switch nested := v.(type) {
		case bson.M:
			out[k] = toMap(nested)
		case bson.D:
			out[k] = toMap(nested.Map())
		default:
			out[k] = v
		}
	}
	return out
}
