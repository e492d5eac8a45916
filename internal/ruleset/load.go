package ruleset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/label-verifier/internal/common"
)

// Load decodes a rule-set document on top of the defaults, so a file only
// needs the fields it overrides. The document is schema-validated first.
func Load(data []byte) (*Config, error) {
	if err := validateAgainstSchema(BuildRulesetJSONSchema(), data); err != nil {
		return nil, common.NewAppError("RULESET_SCHEMA", err.Error(), common.ErrConfigInvalid)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, common.NewAppError("RULESET_DECODE", "decoding rule-set document", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads and decodes one rule-set file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(err, "reading rule-set file")
	}
	return Load(data)
}

// Validate checks cross-field consistency the schema cannot express.
func (c *Config) Validate() error {
	t := c.Thresholds
	if t.IdentityReview > t.IdentityPass {
		return common.NewAppError("RULESET_THRESHOLDS",
			fmt.Sprintf("identity_review (%.2f) exceeds identity_pass (%.2f)", t.IdentityReview, t.IdentityPass),
			common.ErrConfigInvalid)
	}
	if c.CanonicalWarning == "" {
		return common.NewAppError("RULESET_WARNING", "canonical_warning must not be empty", common.ErrConfigInvalid)
	}
	if len(c.BeverageTypes) == 0 {
		return common.NewAppError("RULESET_BEVERAGES", "beverage_types must not be empty", common.ErrConfigInvalid)
	}
	return nil
}

// validateAgainstSchema validates data against the schema map.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("document does not match schema: %w", err)
	}
	return nil
}
