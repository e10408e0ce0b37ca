package sponsor

import (
	"context"
	"fmt"
	"time"
)

// Describer supplies the audit description for a gratitude event and
// may attach additional records to it inside the same transaction.
// The crediting transaction depends only on this two-method capability
// set, never on a concrete describer type.
type Describer interface {
	// DescriptionString returns the human-readable description stored
	// on each gratitude event.
	DescriptionString() string

	// DescribeGratitude may write zero or more additional records tied
	// to the given event, using the same open transaction that will
	// decrement the sponsor.
	DescribeGratitude(ctx context.Context, tx Tx, timestamp time.Time, gratitudeID string) error
}

// StringDescriber holds a fixed description and performs no
// additional writes.
type StringDescriber struct {
	Message string
}

func (d StringDescriber) DescriptionString() string {
	return d.Message
}

func (d StringDescriber) DescribeGratitude(ctx context.Context, tx Tx, timestamp time.Time, gratitudeID string) error {
	return nil
}

// CommitDescriber carries the metadata of the commit being prepared
// and attaches a CommitRecord to every gratitude event it describes.
type CommitDescriber struct {
	CommitMessage    string
	PreMessagePath   string
	WorkingDirectory string
	CommitSource     string
	CommitObject     string
	ParentCommit     string
}

func (d CommitDescriber) DescriptionString() string {
	return fmt.Sprintf("commit from %s", d.WorkingDirectory)
}

func (d CommitDescriber) DescribeGratitude(ctx context.Context, tx Tx, timestamp time.Time, gratitudeID string) error {
	return tx.AddCommitRecord(ctx, CommitRecord{
		GratitudeID:      gratitudeID,
		CommitMessage:    d.CommitMessage,
		WorkingDirectory: d.WorkingDirectory,
		PreMessagePath:   d.PreMessagePath,
		CommitSource:     d.CommitSource,
		CommitObject:     d.CommitObject,
		ParentCommit:     d.ParentCommit,
	})
}
