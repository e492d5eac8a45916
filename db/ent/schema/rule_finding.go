package schema

import (
	"encoding/json"

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

// RuleFinding is the outcome of a single compliance check inside one job.
// Rows are immutable once written; seq preserves the engine's check order.
type RuleFinding struct{ ent.Schema }

func (RuleFinding) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "rule_finding"},
	}
}

func (RuleFinding) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).Default(uuid.New).Immutable(),
		// explicit FK
		field.UUID("job_id", uuid.UUID{}),
		field.Int("seq").NonNegative(),
		field.String("rule_id").NotEmpty(),
		field.String("category").NotEmpty().
			Validate(utils.EnumValidator(constants.CategoryStrings()...)),
		field.String("status").NotEmpty().
			Validate(utils.EnumValidator(constants.CheckStatusStrings()...)),
		field.String("message").
			SchemaType(map[string]string{dialect.Postgres: "text"}),
		field.String("extracted_value").Optional(),
		field.String("app_value").Optional(),
		field.JSON("bbox_json", json.RawMessage{}).
			Optional(),
	}
}

func (RuleFinding) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("job", VerificationJob.Type).
			Ref("findings").
			Field("job_id").
			Unique().
			Required(),
	}
}

func (RuleFinding) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("job_id", "seq").Unique(),
		index.Fields("status"),
	}
}
