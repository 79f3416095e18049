package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/pfm"
	"github.com/etnz/pfm/docs"
	"github.com/etnz/pfm/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// NewAccountant returns the expert in charge of the user's ledger. Its
// function library is the full operation surface of the ledger store:
// totals, listings, category and month breakdowns, and the add, update
// and delete mutations.
func NewAccountant(store *pfm.Store, opts renderer.Options) *Expert {
	lib := ledgerFunctions(store, opts)
	return &Expert{
		Name:      "Accountant",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's personal ledger of
				income and expenses. Use the available tools to answer questions
				about totals, balances and spending patterns, and to record new
				transactions when the user asks for it. Pardon the user's
				approximative language and figure out what they meant. Amounts are
				plain numbers; dates follow the documented formats.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

var dateDoc = must(docs.GetTopic("dates"))

// schema fragments shared by several declarations.
func filterProperties() map[string]*genai.Schema {
	return map[string]*genai.Schema{
		"year":       {Type: genai.TypeInteger, Description: "Restrict to this calendar year."},
		"month":      {Type: genai.TypeInteger, Description: "Restrict to this month number (1-12)."},
		"day":        {Type: genai.TypeInteger, Description: "Restrict to this day of month."},
		"start_date": {Type: genai.TypeString, Description: "Inclusive lower bound on the date.\n" + dateDoc},
		"end_date":   {Type: genai.TypeString, Description: "Inclusive upper bound on the date."},
		"category":   {Type: genai.TypeString, Description: "Case-insensitive substring match on the category; \"all\" disables the filter."},
	}
}

func ledgerFunctions(store *pfm.Store, opts renderer.Options) []Function {
	parseFilter := func(args map[string]any) (pfm.Filter, error) {
		f := pfm.Filter{
			Year:     argInt(args, "year"),
			Month:    time.Month(argInt(args, "month")),
			Day:      argInt(args, "day"),
			Category: argString(args, "category"),
		}
		var err error
		if s := argString(args, "start_date"); s != "" {
			if f.Start, err = pfm.ParseDate(s); err != nil {
				return f, err
			}
		}
		if s := argString(args, "end_date"); s != "" {
			if f.End, err = pfm.ParseDate(s); err != nil {
				return f, err
			}
		}
		return f, nil
	}

	fields := func(args map[string]any) pfm.TransactionFields {
		return pfm.TransactionFields{
			Description: argString(args, "description"),
			Kind:        argString(args, "kind"),
			Amount:      argString(args, "amount"),
			Category:    argString(args, "category"),
			Date:        argString(args, "date"),
		}
	}

	fieldProperties := map[string]*genai.Schema{
		"description": {Type: genai.TypeString, Description: "What the transaction was for."},
		"kind":        {Type: genai.TypeString, Description: "Either \"income\" or \"expense\"."},
		"amount":      {Type: genai.TypeString, Description: "Strictly positive amount, e.g. \"42.50\"."},
		"category":    {Type: genai.TypeString, Description: "Free-form category label."},
		"date":        {Type: genai.TypeString, Description: "Optional date, defaults to today.\n" + dateDoc},
	}

	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "calculate_totals",
				Description: "Sum income and expenses over the filtered transactions and return income, expenses, balance and transaction count.",
				Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: filterProperties()},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "calculate_totals"
				filter, err := parseFilter(args)
				if err != nil {
					return errorResponse(id, name, err)
				}
				ledger, err := store.Load(ctx)
				if err != nil {
					return errorResponse(id, name, err)
				}
				return textResponse(id, name, opts.Totals(pfm.NewTotals(ledger, filter)))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "list_transactions",
				Description: "List the filtered transactions, most recent first, as a markdown table including each transaction's id.",
				Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: withLimit(filterProperties())},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "list_transactions"
				filter, err := parseFilter(args)
				if err != nil {
					return errorResponse(id, name, err)
				}
				ledger, err := store.Load(ctx)
				if err != nil {
					return errorResponse(id, name, err)
				}
				limit := argInt(args, "limit")
				if limit == 0 {
					limit = 10
				}
				return textResponse(id, name, opts.Transactions(pfm.List(ledger, filter, limit)))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "expenses_by_category",
				Description: "Group the filtered expenses by category and sum each group, largest first.",
				Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: filterProperties()},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "expenses_by_category"
				filter, err := parseFilter(args)
				if err != nil {
					return errorResponse(id, name, err)
				}
				ledger, err := store.Load(ctx)
				if err != nil {
					return errorResponse(id, name, err)
				}
				return textResponse(id, name, opts.Categories(pfm.ExpensesByCategory(ledger, filter)))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "expenses_by_month_for_category",
				Description: "For one category (substring match), sum expenses per calendar month, months ascending.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"category": {Type: genai.TypeString, Description: "Category to match (case-insensitive substring)."},
						"year":     {Type: genai.TypeInteger, Description: "Restrict to this calendar year."},
					},
					Required: []string{"category"},
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "expenses_by_month_for_category"
				ledger, err := store.Load(ctx)
				if err != nil {
					return errorResponse(id, name, err)
				}
				groups := pfm.ExpensesByMonthForCategory(ledger, argString(args, "category"), argInt(args, "year"))
				return textResponse(id, name, opts.Months(groups))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "add_transaction",
				Description: "Record a new transaction in the ledger and persist it.",
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: fieldProperties,
					Required:   []string{"description", "kind", "amount", "category"},
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "add_transaction"
				tx, count, err := store.Add(ctx, fields(args))
				if err != nil {
					return errorResponse(id, name, err)
				}
				return textResponse(id, name, fmt.Sprintf("Recorded %s The ledger now holds %d transactions.", opts.Transaction(tx), count))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "update_transaction",
				Description: "Update one or more fields of an existing transaction, identified by its id.",
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: withID(fieldProperties),
					Required:   []string{"id"},
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "update_transaction"
				tx, err := store.Update(ctx, argString(args, "id"), fields(args))
				if err != nil {
					return errorResponse(id, name, err)
				}
				return textResponse(id, name, "Updated "+opts.Transaction(tx))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "delete_transaction",
				Description: "Delete a transaction from the ledger, identified by its id.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id": {Type: genai.TypeString, Description: "The transaction id, as shown by list_transactions."},
					},
					Required: []string{"id"},
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "delete_transaction"
				tx, count, err := store.Delete(ctx, argString(args, "id"))
				if err != nil {
					return errorResponse(id, name, err)
				}
				return textResponse(id, name, fmt.Sprintf("Deleted %s The ledger now holds %d transactions.", opts.Transaction(tx), count))
			},
		},
	}
}

func withLimit(props map[string]*genai.Schema) map[string]*genai.Schema {
	props["limit"] = &genai.Schema{Type: genai.TypeInteger, Description: "Maximum number of transactions to return (default 10)."}
	return props
}

func withID(props map[string]*genai.Schema) map[string]*genai.Schema {
	copied := make(map[string]*genai.Schema, len(props)+1)
	for k, v := range props {
		copied[k] = v
	}
	copied["id"] = &genai.Schema{Type: genai.TypeString, Description: "The transaction id, as shown by list_transactions."}
	return copied
}

// argString extracts a string argument, tolerating absence.
func argString(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return ""
	}
}

// argInt extracts an integer argument; model numbers arrive as float64.
func argInt(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
