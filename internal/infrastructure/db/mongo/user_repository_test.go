package mongo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Index declarations
// ---------------------------------------------------------------------------

func TestUserIndexes_EmailIsUnique(t *testing.T) {
	indexes := userIndexes()
	if len(indexes) != 1 {
		t.Fatalf("expected 1 index, got %d", len(indexes))
	}

	keys, ok := indexes[0].Keys.(bson.D)
	if !ok || len(keys) != 1 || keys[0].Key != "email" {
		t.Fatalf("expected a single email key, got %#v", indexes[0].Keys)
	}

	opts := indexes[0].Options
	if opts == nil || opts.Unique == nil || !*opts.Unique {
		t.Fatal("email index must be unique, otherwise duplicate registrations both insert")
	}
}

// ---------------------------------------------------------------------------
// Insert error mapping
// ---------------------------------------------------------------------------

func TestMapInsertError_DuplicateKey(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}

	if err := mapInsertError(dup); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestMapInsertError_OtherErrorsWrapped(t *testing.T) {
	cause := errors.New("connection reset")

	err := mapInsertError(cause)
	if errors.Is(err, domain.ErrUserExists) {
		t.Fatal("non-duplicate error must not map to ErrUserExists")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}
