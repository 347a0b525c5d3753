package servers_test

import (
	"encoding/json"
	"regexp"
	"sort"
	"testing"

	"lechon/internal/api/servers"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := servers.GetSwagger()
	require.NoError(t, err)

	operations := map[string]bool{}
	for _, item := range doc.Paths.Map() {
		for _, op := range item.Operations() {
			operations[op.OperationID] = true
		}
	}

	for _, id := range []string{
		"CreateSlot", "GetSlot", "ChangeSlotStatus", "DeleteSlot",
		"UpdateSlot", "AssignOrderToSlot", "UnassignOrderFromSlot",
		"CreateOrder", "GetOrderCooking", "ReconcileAssignments",
	} {
		assert.True(t, operations[id], "missing operation %s", id)
	}
}

func TestSpecJSON(t *testing.T) {
	raw, err := servers.SpecJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "3.0.3", decoded["openapi"])
}

var pathParam = regexp.MustCompile(`\{([^}]+)\}`)

// The bindings are maintained by hand, so every documented operation must have
// a registered route and every route must be documented.
func TestRegisterHandlers_MatchesDocument(t *testing.T) {
	doc, err := servers.GetSwagger()
	require.NoError(t, err)

	var documented, documentedIDs []string
	for path, item := range doc.Paths.Map() {
		for method, op := range item.Operations() {
			documented = append(documented, method+" "+pathParam.ReplaceAllString(path, ":$1"))
			documentedIDs = append(documentedIDs, op.OperationID)
		}
	}

	e := echo.New()
	var registeredIDs []string
	servers.RegisterHandlersWithBaseURL(e, struct{ servers.ServerInterface }{}, "",
		func(operationID string) []echo.MiddlewareFunc {
			registeredIDs = append(registeredIDs, operationID)
			return nil
		})

	var registered []string
	for _, r := range e.Routes() {
		registered = append(registered, r.Method+" "+r.Path)
	}

	sort.Strings(documented)
	sort.Strings(registered)
	sort.Strings(documentedIDs)
	sort.Strings(registeredIDs)
	assert.Equal(t, documented, registered)
	assert.Equal(t, documentedIDs, registeredIDs)
}
