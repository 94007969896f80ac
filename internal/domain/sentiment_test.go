package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelNumeric(t *testing.T) {
	assert.Equal(t, 1.0, LabelPositive.Numeric())
	assert.Equal(t, 0.0, LabelNeutral.Numeric())
	assert.Equal(t, -1.0, LabelNegative.Numeric())
}

func TestLabelValid(t *testing.T) {
	assert.True(t, LabelPositive.Valid())
	assert.True(t, LabelNeutral.Valid())
	assert.True(t, LabelNegative.Valid())
	assert.False(t, Label("mixed").Valid())
	assert.False(t, Label("").Valid())
}

// Downstream consumers key on these exact field names; renaming any of them
// is a breaking change.
func TestSentimentRecordJSONFieldNames(t *testing.T) {
	record := SentimentRecord{
		Bert:        0.9,
		Vader:       0.6,
		Textblob:    0.3,
		Ensemble:    0.6,
		Label:       LabelPositive,
		Uncertainty: 0.24,
		RuleLabel:   LabelPositive,
		Flag:        false,
	}

	raw, err := json.Marshal(record)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, name := range []string{"bert", "vader", "textblob", "ensemble", "label", "uncertainty", "rule_label", "flag"} {
		assert.Contains(t, fields, name)
	}
	assert.Len(t, fields, 8)
}
