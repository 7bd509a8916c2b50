package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(viper.New())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const quoteLines = `[
	{"kind":"service","name":"Screen replacement","unit_price":"150","unit_cost":"60","quantity":1,"duration_minutes":90},
	{"kind":"part","name":"Cable","unit_price":"20","unit_cost":"5","quantity":2}
]`

func TestQuoteCmd(t *testing.T) {
	t.Run("json output", func(t *testing.T) {
		out, err := run(t, quoteLines, "quote", "--prepayment", "40", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got map[string]any
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("invalid json %q: %v", out, err)
		}
		if got["subtotal"] != "190" || got["amount_due"] != "150" || got["estimated_profit"] != "120" {
			t.Fatalf("unexpected output: %s", out)
		}
	})

	t.Run("table output from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lines.json")
		if err := os.WriteFile(path, []byte(quoteLines), 0o600); err != nil {
			t.Fatal(err)
		}
		out, err := run(t, "", "quote", "--file", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Amount due") || !strings.Contains(out, "190.00") {
			t.Fatalf("unexpected table: %s", out)
		}
	})

	t.Run("invalid line", func(t *testing.T) {
		_, err := run(t, `[{"kind":"part","name":"Cable","unit_price":"0","quantity":1}]`, "quote")
		if err == nil || !strings.Contains(err.Error(), "Cable") {
			t.Fatalf("expected error naming the line, got %v", err)
		}
	})

	t.Run("bad prepayment", func(t *testing.T) {
		if _, err := run(t, quoteLines, "quote", "--prepayment", "abc"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestBonusCmd(t *testing.T) {
	t.Run("default policy", func(t *testing.T) {
		out, err := run(t, "", "bonus", "--labor", "8000", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got struct {
			BonusAmount          string `json:"bonus_amount"`
			QuotaProgressPercent int64  `json:"quota_progress_percent"`
			Status               string `json:"status"`
		}
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("invalid json %q: %v", out, err)
		}
		if got.BonusAmount != "500" || got.QuotaProgressPercent != 100 || got.Status != "quota_reached" {
			t.Fatalf("unexpected output: %+v", got)
		}
	})

	t.Run("custom policy", func(t *testing.T) {
		out, err := run(t, "", "bonus", "--labor", "8000", "--quota", "7000", "--rate", "0.5")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "500.00") || !strings.Contains(out, "quota_reached") {
			t.Fatalf("unexpected table: %s", out)
		}
	})

	t.Run("negative labor", func(t *testing.T) {
		if _, err := run(t, "", "bonus", "--labor", "-1"); err == nil {
			t.Fatal("expected error")
		}
	})
}

const closedOrders = `[
	{"id":"o-1","status":"closed","technician_id":"t-1","technician_name":"Ann","lead_source":"Instagram",
	 "final_cost":"5000","total_profit":"2000","master_commission":"100","service_price":"4000","parts_price":"1000",
	 "accepted_at":"2024-05-02T09:00:00Z","completed_at":"2024-05-02T11:00:00Z",
	 "lines":[{"kind":"part","name":"Battery","unit_price":"1000","quantity":1}]},
	{"id":"o-2","status":"closed","technician_id":"t-1","technician_name":"Ann",
	 "final_cost":"2000","total_profit":"800","master_commission":"0","service_price":"2000","parts_price":"0",
	 "accepted_at":"2024-05-03T09:00:00Z","completed_at":"2024-05-03T10:00:00Z"},
	{"id":"o-3","status":"in_progress","technician_id":"t-2","final_cost":"900"}
]`

func TestAggregateCmd(t *testing.T) {
	t.Run("json output skips open orders", func(t *testing.T) {
		out, err := run(t, closedOrders, "aggregate", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got aggregateReport
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("invalid json %q: %v", out, err)
		}
		if got.Aggregate.Totals.Orders != 2 || got.Aggregate.Totals.Revenue.String() != "7000" {
			t.Fatalf("unexpected totals: %+v", got.Aggregate.Totals)
		}
		if len(got.Technicians) != 1 || got.Technicians[0].BonusAmount.String() != "250" {
			t.Fatalf("unexpected technicians: %+v", got.Technicians)
		}
		if len(got.Aggregate.ByLeadSource) != 2 {
			t.Fatalf("expected fallback lead source, got %+v", got.Aggregate.ByLeadSource)
		}
	})

	t.Run("table output", func(t *testing.T) {
		out, err := run(t, closedOrders, "aggregate", "--fallback", "Street")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Totals", "Ann", "Street", "2024-05-02", "Battery"} {
			if !strings.Contains(out, want) {
				t.Fatalf("expected %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("unknown labor basis", func(t *testing.T) {
		if _, err := run(t, closedOrders, "aggregate", "--labor-basis", "hours"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unknown time zone", func(t *testing.T) {
		if _, err := run(t, closedOrders, "aggregate", "--tz", "Mars/Base"); err == nil {
			t.Fatal("expected error")
		}
	})
}
