package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func collect(t *testing.T, ledger *fakeLedger, ref string) []Insight {
	t.Helper()
	seq, err := NewGenerateInsightsUseCase(ledger).Execute(context.Background(), GenerateInsightsInput{
		ReferenceDate: date(ref),
	})
	require.NoError(t, err)

	insights, err := CollectInsights(seq)
	require.NoError(t, err)
	return insights
}

func TestGenerateInsights_FallbackOnEmptyLedger(t *testing.T) {
	insights := collect(t, newFakeLedger(), "2025-10-19")
	assert.Equal(t, []Insight{FallbackInsight}, insights)
}

func TestGenerateInsights_DominantCategory(t *testing.T) {
	ledger := newFakeLedger().
		add("2025-10-01", "Rent", "900").
		add("2025-10-01", "Groceries", "100")

	insights := collect(t, ledger, "2025-10-03")
	require.Len(t, insights, 1)
	assert.Equal(t, SeverityWarning, insights[0].Severity)
	assert.Equal(t,
		"Rent accounts for 90.0% of your spending this month. Consider if this aligns with your priorities.",
		insights[0].Message,
	)
}

func TestGenerateInsights_RuleOrder(t *testing.T) {
	ledger := newFakeLedger()
	for i := 0; i < 6; i++ {
		ledger.add("2025-10-04", "Food & Dining", "10")
	}

	insights := collect(t, ledger, "2025-10-04")
	require.Len(t, insights, 3)

	assert.Equal(t, SeverityWarning, insights[0].Severity)
	assert.Contains(t, insights[0].Message, "Food & Dining accounts for 100.0%")
	assert.Equal(t, SeverityInfo, insights[1].Severity)
	assert.Equal(t, "100.0% of your spending happens on weekends. This might be a good area to monitor.", insights[1].Message)
	assert.Equal(t, SeverityInfo, insights[2].Severity)
	assert.Contains(t, insights[2].Message, "averaging 6.0 transactions per day")
}

// 2025-10-04 is a Saturday and only the fourth day of the month, so the
// projection rule stays silent in these cases.
func TestGenerateInsights_WeekendThreshold(t *testing.T) {
	tests := []struct {
		name        string
		ledger      *fakeLedger
		wantMessage string
	}{
		{
			name: "exactly forty percent on weekends",
			ledger: newFakeLedger().
				add("2025-10-04", "A", "20").
				add("2025-10-04", "B", "20").
				add("2025-10-01", "C", "20").
				add("2025-10-02", "D", "20").
				add("2025-10-03", "E", "20"),
			wantMessage: FallbackInsight.Message,
		},
		{
			name: "below forty percent on weekends",
			ledger: newFakeLedger().
				add("2025-10-04", "A", "10").
				add("2025-10-04", "B", "20").
				add("2025-10-01", "C", "20").
				add("2025-10-02", "D", "25").
				add("2025-10-03", "E", "25"),
			wantMessage: FallbackInsight.Message,
		},
		{
			name: "just above forty percent on weekends",
			ledger: newFakeLedger().
				add("2025-10-04", "A", "20.05").
				add("2025-10-04", "B", "20.05").
				add("2025-10-01", "C", "20").
				add("2025-10-02", "D", "20").
				add("2025-10-03", "E", "19.9"),
			wantMessage: "40.1% of your spending happens on weekends. This might be a good area to monitor.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := collect(t, tt.ledger, "2025-10-04")
			require.Len(t, insights, 1)
			assert.Equal(t, SeverityInfo, insights[0].Severity)
			assert.Equal(t, tt.wantMessage, insights[0].Message)
		})
	}
}

func TestGenerateInsights_DensityThreshold(t *testing.T) {
	sameDay := func(date string, n int) *fakeLedger {
		ledger := newFakeLedger()
		for i := 0; i < n; i++ {
			ledger.add(date, string(rune('A'+i)), "10")
		}
		return ledger
	}

	tests := []struct {
		name        string
		ledger      *fakeLedger
		wantMessage string
	}{
		{
			name:        "five transactions on one day",
			ledger:      sameDay("2025-10-01", 5),
			wantMessage: FallbackInsight.Message,
		},
		{
			name: "five per day across two days",
			ledger: func() *fakeLedger {
				ledger := sameDay("2025-10-01", 5)
				for i := 0; i < 5; i++ {
					ledger.add("2025-10-02", string(rune('F'+i)), "10")
				}
				return ledger
			}(),
			wantMessage: FallbackInsight.Message,
		},
		{
			name:        "six transactions on one day",
			ledger:      sameDay("2025-10-01", 6),
			wantMessage: "You're averaging 6.0 transactions per day. Consider consolidating purchases to reduce impulse spending.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := collect(t, tt.ledger, "2025-10-03")
			require.Len(t, insights, 1)
			assert.Equal(t, SeverityInfo, insights[0].Severity)
			assert.Equal(t, tt.wantMessage, insights[0].Message)
		})
	}
}

func TestGenerateInsights_Projection(t *testing.T) {
	tests := []struct {
		name         string
		ledger       *fakeLedger
		ref          string
		wantSeverity Severity
		wantMessage  string
	}{
		{
			name: "projected well above last month",
			ledger: newFakeLedger().
				add("2025-09-15", "Others", "100").
				add("2025-10-01", "A", "34").
				add("2025-10-01", "B", "33").
				add("2025-10-01", "C", "33"),
			ref:          "2025-10-10",
			wantSeverity: SeverityWarning,
			wantMessage:  "At the current rate, you're projected to spend $310.00 this month, which is significantly higher than last month ($100.00).",
		},
		{
			name: "projected well below last month",
			ledger: newFakeLedger().
				add("2025-09-15", "Others", "1000").
				add("2025-10-01", "A", "34").
				add("2025-10-01", "B", "33").
				add("2025-10-01", "C", "33"),
			ref:          "2025-10-10",
			wantSeverity: SeveritySuccess,
			wantMessage:  "You're on track to spend less this month! Projected: $310.00 vs Last month: $1000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := collect(t, tt.ledger, tt.ref)
			require.Len(t, insights, 1)
			assert.Equal(t, tt.wantSeverity, insights[0].Severity)
			assert.Equal(t, tt.wantMessage, insights[0].Message)
		})
	}
}

func TestGenerateInsights_ProjectionSkippedEarlyInMonth(t *testing.T) {
	ledger := newFakeLedger().
		add("2025-09-15", "Others", "10").
		add("2025-10-01", "A", "34").
		add("2025-10-01", "B", "33").
		add("2025-10-01", "C", "33")

	insights := collect(t, ledger, "2025-10-04")
	assert.Equal(t, []Insight{FallbackInsight}, insights)
}

func TestGenerateInsights_DecreasingTrend(t *testing.T) {
	ledger := newFakeLedger()
	ledger.monthly = history("80", "80", "80", "100", "100", "100")

	insights := collect(t, ledger, "2025-10-02")
	require.Len(t, insights, 1)
	assert.Equal(t, Insight{
		Severity: SeveritySuccess,
		Message:  "Great job! Your spending has been decreasing. Keep up the good work!",
	}, insights[0])
}

func TestGenerateInsights_IncreasingTrend(t *testing.T) {
	ledger := newFakeLedger()
	ledger.monthly = []entity.MonthlySummary{
		{Month: "2025-10", Total: dec("300"), Count: 3},
		{Month: "2025-09", Total: dec("300"), Count: 3},
		{Month: "2025-08", Total: dec("300"), Count: 3},
		{Month: "2025-07", Total: dec("100"), Count: 1},
	}

	insights := collect(t, ledger, "2025-10-02")
	require.Len(t, insights, 1)
	assert.Equal(t, SeverityWarning, insights[0].Severity)
	assert.Equal(t, "Your spending has been increasing recently. Average monthly spending: $250.00", insights[0].Message)
}

func TestGenerateInsights_IsLazyAndSingleUse(t *testing.T) {
	ledger := newFakeLedger().add("2025-10-01", "Rent", "900")

	seq, err := NewGenerateInsightsUseCase(ledger).Execute(context.Background(), GenerateInsightsInput{
		ReferenceDate: date("2025-10-19"),
	})
	require.NoError(t, err)
	assert.Zero(t, ledger.calls.Load(), "no ledger query should run before iteration")

	first := 0
	for range seq {
		first++
		break
	}
	assert.Equal(t, 1, first)
	assert.NotZero(t, ledger.calls.Load())

	second := 0
	for range seq {
		second++
	}
	assert.Zero(t, second)
}

func TestGenerateInsights_LedgerFailure(t *testing.T) {
	ledger := newFakeLedger()
	ledger.err = errors.New("disk I/O error")

	seq, err := NewGenerateInsightsUseCase(ledger).Execute(context.Background(), GenerateInsightsInput{
		ReferenceDate: date("2025-10-19"),
	})
	require.NoError(t, err)

	_, err = CollectInsights(seq)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
}

func TestGenerateInsights_MissingReferenceDate(t *testing.T) {
	_, err := NewGenerateInsightsUseCase(newFakeLedger()).Execute(context.Background(), GenerateInsightsInput{})
	assert.ErrorIs(t, err, domainerror.ErrMissingReferenceDate)
}
