package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewSearch, "search"},
		{ViewDocuments, "documents"},
		{ViewHelp, "help"},
		{ViewDocDetails, "doc_details"},
		{ViewNotifications, "notifications"},
		{ViewDashboard, "dashboard"},
		{ViewSettings, "settings"},
		{ViewType(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	seen := make(map[string]ViewType)
	for v := ViewMenu; v <= ViewSettings; v++ {
		name := v.String()
		_, dup := seen[name]
		assert.False(t, dup, "duplicate view name %s", name)
		seen[name] = v
	}
}

func TestDocumentActionDone_CarriesError(t *testing.T) {
	err := errors.New("boom")
	msg := DocumentActionDone{ID: "7", Action: ActionApprove, Err: err}

	assert.Equal(t, "7", msg.ID)
	assert.Equal(t, DocumentAction("approve"), msg.Action)
	assert.ErrorIs(t, msg.Err, err)
}

func TestSuggestionsLoaded_Superseded(t *testing.T) {
	msg := SuggestionsLoaded{}
	assert.False(t, msg.Fetched)
	assert.NoError(t, msg.Err)
}
