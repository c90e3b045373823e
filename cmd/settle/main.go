// Command settle reads expenses as JSON and prints member balances and the
// payments that settle them.
//
//	settle -file expenses.json -verify
//	cat expenses.json | settle
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mmynk/tripbudget/internal/calculator"
	"github.com/mmynk/tripbudget/internal/models"
	"github.com/mmynk/tripbudget/pkg/logging"
)

type expenseInput struct {
	ID           string   `json:"id"`
	TripID       string   `json:"trip_id"`
	Description  string   `json:"description"`
	Amount       float64  `json:"amount"`
	Payer        string   `json:"payer"`
	Participants []string `json:"participants"`
	Category     string   `json:"category"`
	Date         string   `json:"date"`
}

func main() {
	logging.Setup(os.Stderr, logging.ParseLevel(os.Getenv("LOG_LEVEL")), os.Getenv("LOG_FORMAT"))

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			slog.Error("settle failed", "error", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("settle", flag.ContinueOnError)
	file := fs.String("file", "", "JSON file with an array of expenses (default stdin)")
	verify := fs.Bool("verify", false, "re-apply the instructions and check every balance settles")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	expenses, err := readExpenses(in)
	if err != nil {
		return err
	}

	balances, err := calculator.ComputeBalances(expenses)
	if err != nil {
		return err
	}
	instructions, err := calculator.Settle(balances)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PERSON\tNET")
	for _, b := range balances {
		fmt.Fprintf(tw, "%s\t%+.2f\n", b.Person, b.Net)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "FROM\tTO\tAMOUNT")
	for _, si := range instructions {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\n", si.From, si.To, si.Amount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if *verify {
		residue := 0.0
		for _, b := range calculator.ApplyInstructions(balances, instructions) {
			residue = math.Max(residue, math.Abs(b.Net))
		}
		fmt.Fprintf(stdout, "\nresidue: %.4f\n", residue)
		if !calculator.IsSettled(residue) {
			return fmt.Errorf("balances do not settle: residue %.4f", residue)
		}
	}
	return nil
}

func readExpenses(r io.Reader) ([]models.Expense, error) {
	var inputs []expenseInput
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		return nil, fmt.Errorf("failed to decode expenses: %w", err)
	}

	expenses := make([]models.Expense, len(inputs))
	for i, in := range inputs {
		date, err := parseDate(in.Date)
		if err != nil {
			return nil, &calculator.ValidationError{ID: in.ID, Field: "date", Reason: err.Error()}
		}
		category, _ := models.ParseCategory(in.Category)
		expenses[i] = models.Expense{
			ID:           in.ID,
			TripID:       in.TripID,
			Description:  in.Description,
			Amount:       in.Amount,
			Payer:        strings.TrimSpace(in.Payer),
			Participants: models.TrimNames(in.Participants),
			Category:     category,
			Date:         date,
		}
	}
	return expenses, nil
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
