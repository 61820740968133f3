package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/tawada/grass-grower/internal/domain"
)

// ModificationSchema returns the JSON schema of domain.Modification.
func ModificationSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
	}
	return r.Reflect(&domain.Modification{})
}

// ModificationInstruction returns the instruction asking for a single
// modification as a JSON object matching ModificationSchema.
func ModificationInstruction() (string, error) {
	schema, err := json.MarshalIndent(ModificationSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal modification schema: %w", err)
	}
	return "Propose a new code modification as JSON format from the whole code and issues. " +
		"Do not duplicate output if the code has already been changed. " +
		"The JSON modification includes keys such as 'file_path', 'before_code', 'after_code'. " +
		"'before_code' is a verbatim part of the file and is replaced once by 'after_code'. " +
		"To create a new file, set 'before_code' to an empty string and put the whole file in 'after_code'.\n" +
		"The response must be a single JSON object matching this schema:\n" +
		string(schema) + "\n" +
		"e.g.\n" +
		`{"file_path": "path/to/file", "before_code": "def func1(aaa: int):\n    print(aaa)\n", ` +
		`"after_code": "def func1(aaa: int, bbb: int):\n    print(aaa)\n    print(bbb)\n"}`, nil
}
