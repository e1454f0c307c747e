// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

// ValidateShape reports whether decoded JSON conforms to the expected
// topic-extraction shape: a list of objects, each with a string "topic",
// a string "explanation", and a "related_categories" list whose every
// element is a string. The predicate is pure; it gates the retry loop.
//
// Vocabulary membership of the categories is not checked here; only the
// prompt constrains it. Off-vocabulary categories score zero overlap
// downstream.
func ValidateShape(data any) bool {
	list, ok := data.([]any)
	if !ok {
		return false
	}

	for _, elem := range list {
		item, ok := elem.(map[string]any)
		if !ok {
			return false
		}

		if _, ok := item["topic"].(string); !ok {
			return false
		}
		if _, ok := item["explanation"].(string); !ok {
			return false
		}

		cats, ok := item["related_categories"].([]any)
		if !ok {
			return false
		}
		for _, c := range cats {
			if _, ok := c.(string); !ok {
				return false
			}
		}
	}

	return true
}
