package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/label-verifier/constants"
	"github.com/joseph-ayodele/label-verifier/db/ent/schema/utils"
)

// ReviewEntry tracks one job through the human review queue. A job enters at
// most once; approve and reject set the decision fields.
type ReviewEntry struct{ ent.Schema }

func (ReviewEntry) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "review_entry"},
	}
}

func (ReviewEntry) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).Default(uuid.New).Immutable(),
		// explicit FK
		field.UUID("job_id", uuid.UUID{}),
		field.String("state").Default(string(constants.ReviewUnderReview)).
			Validate(utils.EnumValidator(constants.ReviewStateStrings()...)),
		field.String("reviewer").Optional(),
		field.String("note").Optional().
			SchemaType(map[string]string{dialect.Postgres: "text"}),
		field.Time("created_at").Default(time.Now),
		field.Time("decided_at").Optional().Nillable(),
	}
}

func (ReviewEntry) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("job", VerificationJob.Type).
			Ref("review").
			Field("job_id").
			Unique().
			Required(),
	}
}

func (ReviewEntry) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("job_id").Unique(),
		index.Fields("state", "created_at"),
	}
}
