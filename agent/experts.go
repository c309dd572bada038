package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/forex"
	"github.com/etnz/forex/date"
	"github.com/etnz/forex/renderer"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used by the experts.
const DefaultModel = "gemini-2.5-pro"

func instruction(s string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: s}}}
}

// newFacilitator creates the expert leading the conversation with the user.
func newFacilitator(experts ...*Expert) *Expert {
	model := DefaultModel
	if len(experts) > 0 && experts[0].ModelName != "" {
		model = experts[0].ModelName
	}
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and of solving the user's request.

			The user runs a currency exchange desk: they buy currency lots from suppliers and sell
			them to customers. Learn about the experts' skills from the Tools and ask them questions.
			They keep the context of your previous questions.

			Devise a plan of questions to each expert and come up with the best response to the
			user's request. Amounts are in the accounting currency of the books.
			`),
		},
		Library: NewLibrary(experts),
	}
}

// NewDealer creates an expert on the exchange market, grounded on Google Search.
func NewDealer(model string) *Expert {
	return &Expert{
		Name: "Dealer",
		Description: `This is an expert currency dealer, aware of the current exchange rates
		and of the news moving them. Ask the Dealer whenever you need market rates or recent information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are an expert currency dealer. Leverage Google Search to ground the rates and
			the news you report, and always say when and where a rate was quoted.
			`),
		},
	}
}

// NewAccountant creates the expert reading the books. acc is the accounting
// currency amounts are displayed in.
func NewAccountant(model string, ledger *forex.Ledger, acc string) *Expert {
	lib := Accounting(ledger, acc)
	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant, in charge of the books of the exchange desk.
		He knows the stock on hand of each currency, its average cost, and the profit made over any period.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are the accountant of a currency exchange desk. Stock is valued at weighted average
			cost, and the profit of a sale is its total minus its quantity at that cost.
			Use the Tools to answer questions on the stock, the suppliers and the profit.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// Accounting returns the functions reading ledger.
func Accounting(ledger *forex.Ledger, acc string) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Inventory",
				Description: "Inventory returns the balance and the average cost of each currency in stock, globally and per supplier.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"supplier": {Type: genai.TypeString, Description: "Only show the stock bought from this supplier."},
					},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown document with the positions."},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				supplier, _ := args["supplier"].(string)
				return output(id, "Inventory", renderer.RenderInventory(ledger.Inventory(), supplier, acc))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Report",
				Description: "Report returns the value received, the value sold and the profit over a period, with a per currency breakdown.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"range":    {Type: genai.TypeString, Description: "One of today, this-month, last-month or all. Ignored if start or end are set."},
						"start":    {Type: genai.TypeString, Description: "First day of the period, YYYY-MM-DD."},
						"end":      {Type: genai.TypeString, Description: "Last day of the period, YYYY-MM-DD."},
						"supplier": {Type: genai.TypeString, Description: "Only report on this supplier's receipts and stock sales."},
					},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown document with the report."},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				opts, err := reportOptions(args)
				if err != nil {
					return failure(id, "Report", err)
				}
				return output(id, "Report", renderer.RenderReport(forex.NewReport(ledger.Transactions(), opts), acc, false))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Transactions",
				Description: "Transactions lists the records of the books, newest first.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"kind":     {Type: genai.TypeString, Description: "receipt or sale, both if empty."},
						"search":   {Type: genai.TypeString, Description: "Part of a customer or supplier name."},
						"currency": {Type: genai.TypeString, Description: "Currency code."},
					},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table of the records."},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				var opts forex.ListOptions
				opts.Search, _ = args["search"].(string)
				opts.Currency, _ = args["currency"].(string)
				if k, _ := args["kind"].(string); k != "" {
					kind, err := forex.ParseKind(k)
					if err != nil {
						return failure(id, "Transactions", err)
					}
					opts.Kind = kind
				}
				return output(id, "Transactions", renderer.RenderListing(forex.NewListing(ledger.Transactions(), opts), acc))
			},
		},
	}
}

func reportOptions(args map[string]any) (forex.ReportOptions, error) {
	str := func(k string) string { s, _ := args[k].(string); return strings.TrimSpace(s) }
	opts := forex.ReportOptions{Mode: forex.General}
	if s := str("supplier"); s != "" {
		opts.Mode, opts.Supplier = forex.BySupplier, s
	}
	if str("start") == "" && str("end") == "" {
		rng, err := date.Quick(str("range"), date.Today())
		opts.Range = rng
		return opts, err
	}
	from, err := date.Parse(str("start"))
	if err != nil {
		return opts, fmt.Errorf("argument 'start': %w", err)
	}
	to, err := date.Parse(str("end"))
	if err != nil {
		return opts, fmt.Errorf("argument 'end': %w", err)
	}
	opts.Range = date.NewRange(from, to)
	return opts, nil
}
