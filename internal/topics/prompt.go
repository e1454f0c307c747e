// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"
)

// extractionPromptTmpl is the fixed instruction sent to the AI backend for
// one extraction attempt. It embeds the draft text and the allowed-category
// vocabulary and asks for a JSON array of topic objects.
var extractionPromptTmpl = template.Must(template.New("extraction").Parse(`You are a topic extraction system for term-paper drafts.

Step 1: Summarize the text provided by the user and extract up to three topics or subjects from it, with a brief explanation of each.

Step 2: For each topic, select a list of related categories strictly from the allowed categories below. A category may only be used if it appears in the allowed list.

Step 3: If no topics or no related categories can be found in the text, emit an empty list for that field.

Here is the text provided by the user:
{{.UserText}}

Allowed categories: {{.Categories}}

Respond with a JSON array in English, where each element has the following shape:
{"topic": "<subject extracted from the user text>", "explanation": "<short text about the subject>", "related_categories": ["<category from the allowed list>", ...]}

Do not include any text outside the JSON array.
`))

// renderPrompt executes the extraction template with the draft text and the
// JSON-encoded allowed-category list.
func renderPrompt(text string, allowedCategories []string) (string, error) {
	cats, err := json.Marshal(allowedCategories)
	if err != nil {
		return "", fmt.Errorf("encoding categories: %w", err)
	}

	var buf bytes.Buffer
	err = extractionPromptTmpl.Execute(&buf, struct {
		UserText   string
		Categories string
	}{UserText: text, Categories: string(cats)})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
