package doctor

import (
	"encoding/json"
	stderrors "errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStatus_String(t *testing.T) {
	tests := []struct {
		status   CheckStatus
		expected string
	}{
		{StatusPass, "pass"},
		{StatusWarn, "warn"},
		{StatusFail, "fail"},
		{CheckStatus(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestCheckResult_JSON(t *testing.T) {
	data, err := json.Marshal(CheckResult{Name: "color", Status: StatusWarn, Message: "256 colors"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"color","status":"warn","message":"256 colors"}`, string(data))
}

func TestCheckResult_JSONRoundTrip(t *testing.T) {
	for _, status := range []CheckStatus{StatusPass, StatusWarn, StatusFail} {
		t.Run(status.String(), func(t *testing.T) {
			in := CheckResult{Name: "config_file", Status: status, Message: "ok", Fixable: true}
			data, err := json.Marshal(in)
			require.NoError(t, err)

			var out CheckResult
			require.NoError(t, json.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestCheckStatus_UnmarshalUnknown(t *testing.T) {
	var r CheckResult
	err := json.Unmarshal([]byte(`{"name":"x","status":"broken"}`), &r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown check status")
}

// mockCheck is a test implementation of Check.
type mockCheck struct {
	name     string
	category string
	result   CheckResult
	fixed    CheckResult
	fixErr   error
	fixCalls int32
}

func (m *mockCheck) Name() string     { return m.name }
func (m *mockCheck) Category() string { return m.category }
func (m *mockCheck) Run() CheckResult {
	if atomic.LoadInt32(&m.fixCalls) > 0 && m.fixErr == nil {
		return m.fixed
	}
	return m.result
}
func (m *mockCheck) Fix() error {
	atomic.AddInt32(&m.fixCalls, 1)
	return m.fixErr
}

func sampleChecks() []Check {
	return []Check{
		&mockCheck{name: "a", category: CategoryConfig, result: CheckResult{Name: "a", Status: StatusPass}},
		&mockCheck{name: "b", category: CategoryThemes, result: CheckResult{Name: "b", Status: StatusFail}},
		&mockCheck{name: "c", category: CategoryConfig, result: CheckResult{Name: "c", Status: StatusWarn}},
	}
}

func TestRunAll(t *testing.T) {
	results := RunAll(sampleChecks())

	require.Len(t, results, 3)
	assert.Equal(t, StatusPass, results[0].Status)
	assert.Equal(t, StatusFail, results[1].Status)
	assert.Equal(t, StatusWarn, results[2].Status)
}

func TestRunAllParallel(t *testing.T) {
	results := RunAllParallel(sampleChecks())

	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Name, "order follows the checks")
	assert.Equal(t, "b", results[1].Name)
	assert.Equal(t, "c", results[2].Name)
}

func TestFixAll(t *testing.T) {
	fixable := &mockCheck{
		name:   "fixable",
		result: CheckResult{Name: "fixable", Status: StatusWarn, Fixable: true},
		fixed:  CheckResult{Name: "fixable", Status: StatusPass},
	}
	failing := &mockCheck{
		name:   "failing",
		result: CheckResult{Name: "failing", Status: StatusFail, Fixable: true},
		fixErr: stderrors.New("nope"),
	}
	manual := &mockCheck{
		name:   "manual",
		result: CheckResult{Name: "manual", Status: StatusFail},
	}
	passing := &mockCheck{
		name:   "passing",
		result: CheckResult{Name: "passing", Status: StatusPass, Fixable: true},
	}

	checks := []Check{fixable, failing, manual, passing}
	before := RunAll(checks)
	after := FixAll(checks, before)

	assert.Equal(t, StatusPass, after[0].Status, "fixed checks are re-run")
	assert.Equal(t, StatusFail, after[1].Status, "failed fix keeps the result")
	assert.Equal(t, StatusFail, after[2].Status)
	assert.Equal(t, int32(0), manual.fixCalls, "non-fixable checks are left alone")
	assert.Equal(t, int32(0), passing.fixCalls, "passing checks are left alone")
	assert.Equal(t, StatusWarn, before[0].Status, "input isn't modified")
}

func TestGroupByCategory(t *testing.T) {
	grouped := GroupByCategory(sampleChecks())

	assert.Equal(t, []int{0, 2}, grouped[CategoryConfig])
	assert.Equal(t, []int{1}, grouped[CategoryThemes])
	assert.NotContains(t, grouped, CategoryMetrics)
}

func TestCountsAndSummary(t *testing.T) {
	results := RunAll(sampleChecks())

	counts := CountByStatus(results)
	assert.Equal(t, 1, counts[StatusPass])
	assert.Equal(t, 1, counts[StatusWarn])
	assert.Equal(t, 1, counts[StatusFail])

	assert.True(t, HasFailures(results))
	assert.True(t, HasIssues(results))
	assert.Equal(t, "2 issues found", Summary(results))

	clean := []CheckResult{{Status: StatusPass}}
	assert.False(t, HasFailures(clean))
	assert.False(t, HasIssues(clean))
	assert.Equal(t, "Everything looks good", Summary(clean))

	one := []CheckResult{{Status: StatusWarn, Fixable: true}, {Status: StatusPass, Fixable: true}}
	assert.False(t, HasFailures(one))
	assert.Equal(t, "1 issue found", Summary(one))
	assert.Equal(t, 1, FixableCount(one))
}
