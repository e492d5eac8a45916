package schema

import (
	"encoding/json"
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

// VerificationJob is one label image checked against one application record.
type VerificationJob struct{ ent.Schema }

func (VerificationJob) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "verification_job"},
	}
}

func (VerificationJob) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).Default(uuid.New).Immutable(),
		field.String("filename").NotEmpty(),
		field.String("source_path").Optional(),
		field.String("beverage_type").NotEmpty().
			Validate(utils.EnumValidator(constants.BeverageTypeStrings()...)),
		field.String("status").Default(string(constants.JobStatusQueued)).
			Validate(utils.EnumValidator(constants.JobStatusStrings()...)),
		field.String("verdict").Optional().Nillable().
			Validate(utils.EnumValidator(constants.VerdictStrings()...)),
		field.Int("passed").NonNegative().Default(0),
		field.Int("needs_review").NonNegative().Default(0),
		field.Int("failed").NonNegative().Default(0),
		field.Float("ocr_confidence").Optional(),
		field.JSON("extracted_json", json.RawMessage{}).
			Optional(),
		field.JSON("application_json", json.RawMessage{}).
			Optional(),
		field.String("error_message").Optional().Nillable().
			SchemaType(map[string]string{dialect.Postgres: "text"}),
		field.Time("started_at").Default(time.Now),
		field.Time("finished_at").Optional().Nillable(),
	}
}

func (VerificationJob) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("findings", RuleFinding.Type),
		edge.To("review", ReviewEntry.Type),
	}
}

func (VerificationJob) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("status", "started_at"),
		index.Fields("verdict"),
	}
}
