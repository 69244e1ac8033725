package firestorerepos

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/trezcool/presence/core/student"
)

type studentRepository struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

// NewStudentRepository fails when collection is not a collection path.
func NewStudentRepository(client *firestore.Client, collection string) (student.Repository, error) {
	if collection == "" {
		collection = "students"
	}
	coll := client.Collection(collection)
	if coll == nil {
		return nil, errors.Errorf("invalid collection path %q", collection)
	}
	return &studentRepository{client: client, coll: coll}, nil
}

func (repo *studentRepository) QueryAll(ctx context.Context) ([]student.Record, error) {
	iter := repo.coll.Documents(ctx)
	defer iter.Stop()

	records := make([]student.Record, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterating student documents")
		}
		records = append(records, student.Record{ID: snap.Ref.ID, Data: decode(snap.Data())})
	}
	return records, nil
}

func (repo *studentRepository) GetByID(ctx context.Context, id string) (student.Record, error) {
	snap, err := repo.coll.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return student.Record{}, student.ErrNotFound
		}
		return student.Record{}, errors.Wrap(err, "getting student document")
	}
	return student.Record{ID: snap.Ref.ID, Data: decode(snap.Data())}, nil
}

func (repo *studentRepository) Create(ctx context.Context, data student.Data) (student.Record, error) {
	ref, _, err := repo.coll.Add(ctx, encode(data))
	if err != nil {
		return student.Record{}, errors.Wrap(err, "adding student document")
	}
	return student.Record{ID: ref.ID, Data: data}, nil
}

// SetCheckout reads and updates the document in one transaction so a record is only checked-out once.
func (repo *studentRepository) SetCheckout(ctx context.Context, id, checkout string) error {
	ref := repo.coll.Doc(id)
	err := repo.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return student.ErrNotFound
			}
			return errors.Wrap(err, "getting student document")
		}
		if decode(snap.Data()).CheckOut != "" {
			return student.ErrAlreadyCheckedOut
		}
		return tx.Update(ref, []firestore.Update{{Path: student.FieldCheckOut, Value: checkout}})
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, student.ErrNotFound):
		return student.ErrNotFound
	case errors.Is(err, student.ErrAlreadyCheckedOut):
		return student.ErrAlreadyCheckedOut
	default:
		return errors.Wrap(err, "updating checkout")
	}
}

func encode(data student.Data) map[string]interface{} {
	doc := map[string]interface{}{
		student.FieldRollNumber: data.RollNumber,
		student.FieldName:       data.Name,
		student.FieldCheckIn:    data.CheckIn,
	}
	if data.CheckOut != "" {
		doc[student.FieldCheckOut] = data.CheckOut
	}
	return doc
}

// decode reads a student document leniently: documents are written by other clients,
// registration numbers may be numbers and timestamps native Firestore timestamps.
func decode(doc map[string]interface{}) student.Data {
	return student.Data{
		RollNumber: stringify(doc[student.FieldRollNumber]),
		Name:       stringify(doc[student.FieldName]),
		CheckIn:    stringify(doc[student.FieldCheckIn]),
		CheckOut:   stringify(doc[student.FieldCheckOut]),
	}
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(val)
	}
}
