package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fadilmartias/resume-api/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCandidateNotFound = errors.New("candidate not found")

var (
	listProjection = bson.D{
		{Key: "_id", Value: 0},
		{Key: "candidate_id", Value: 1},
		{Key: "introduction", Value: 1},
		{Key: "skills", Value: 1},
	}
	recordProjection = bson.D{{Key: "_id", Value: 0}}
)

type CandidateRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

func NewCandidateRepository(coll *mongo.Collection, logger *slog.Logger) *CandidateRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CandidateRepository{coll: coll, logger: logger}
}

// Insert is a blind insert: the same candidate_id may be stored more than once.
func (r *CandidateRepository) Insert(ctx context.Context, record *model.CandidateRecord) error {
	record.Normalize()
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		r.logger.Error("candidate.insert.error", "candidate_id", record.CandidateID, "error", err)
		return err
	}
	return nil
}

// List returns every record projected to candidate_id, introduction and skills.
func (r *CandidateRepository) List(ctx context.Context) ([]model.CandidateSummary, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetProjection(listProjection))
	if err != nil {
		r.logger.Error("candidate.list.error", "error", err)
		return nil, err
	}
	out := []model.CandidateSummary{}
	if err := cur.All(ctx, &out); err != nil {
		r.logger.Error("candidate.list.decode_error", "error", err)
		return nil, err
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}

func (r *CandidateRepository) FindByCandidateID(ctx context.Context, candidateID string) (*model.CandidateRecord, error) {
	var rec model.CandidateRecord
	err := r.coll.FindOne(ctx,
		bson.D{{Key: "candidate_id", Value: candidateID}},
		options.FindOne().SetProjection(recordProjection),
	).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCandidateNotFound
	}
	if err != nil {
		r.logger.Error("candidate.find.error", "candidate_id", candidateID, "error", err)
		return nil, err
	}
	rec.Normalize()
	return &rec, nil
}
