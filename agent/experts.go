package agent

import (
	"context"
	"fmt"
	"strings"

	cryptotracker "github.com/XMabbX/CryptoTracker"
	"github.com/XMabbX/CryptoTracker/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to get information about the crypto assets in his portfolio:
			what he holds, what it is worth, and what he gained or lost.

			Devise a plan of questions to ask each expert and come up with the best response to the
			user's request. Check the portfolio first to understand which coins the user holds.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the market analyst expert. It grounds its answers
// with Google Search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert crypto market analyst,
		very well aware of exchanges, protocols, tokens and the latest market news.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in crypto markets, you can search and find about anything related to
			exchanges, tokens, protocols, staking products etc. You leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAccountant creates the expert in charge of the user's ledger and
// analytics. Its tools read the frozen snapshots of the pipeline.
func NewAccountant(ledger *cryptotracker.Ledger, pipeline *cryptotracker.Pipeline) *Expert {
	lib := accountantTools(ledger, pipeline)

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the user's transaction ledger
		and the derived analytics. He can report held coins, per coin gain and loss figures and the
		full transaction history.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's crypto portfolio ledger.
				You know how to use the Tools to extract relevant information about the user's holdings.
				You are part of a team of experts, yours is everything recorded in the ledger. They might
				ask you questions about the user's portfolio, pardon their approximative language and
				figure out what they meant.

				Use the available tools to get information about the user's portfolio
				  - the summary of all held coins
				  - the detailed status of one coin, with lots and realized gains
				  - the transaction history of one coin
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements Function with plain values.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func success(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func tickArg(args map[string]any) (string, error) {
	raw, ok := args["tick"]
	if !ok {
		return "", fmt.Errorf("argument 'tick' is required")
	}
	tick, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument 'tick' is not a string as expected but %T", raw)
	}
	return strings.ToUpper(strings.TrimSpace(tick)), nil
}

var tickParameter = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"tick": {
			Type:        genai.TypeString,
			Description: "The coin ticker, e.g. BTC or ADA.",
		},
	},
	Required: []string{"tick"},
}

func accountantTools(ledger *cryptotracker.Ledger, pipeline *cryptotracker.Pipeline) []Function {
	summary := &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Summary",
			Description: `Summary lists every coin in the portfolio with its quantities, current value,
			unrealized and realized gains, plus the portfolio totals.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of all held coins with their analytics.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			if err := pipeline.ProcessAll(ctx); err != nil {
				return failure(id, "Summary", err)
			}
			return success(id, "Summary", renderer.SummaryMarkdown(pipeline.Frozen(), pipeline.Currency()))
		},
	}

	status := &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "CoinStatus",
			Description: `CoinStatus reports the detailed analytics of one coin: position, buy lots,
			amortizations from sells, staking earnings and fees.`,
			Parameters: tickParameter,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted detailed report for the coin.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			tick, err := tickArg(args)
			if err != nil {
				return failure(id, "CoinStatus", err)
			}
			data, err := pipeline.Process(ctx, tick)
			if err != nil {
				return failure(id, "CoinStatus", err)
			}
			return success(id, "CoinStatus", renderer.StatusMarkdown(data))
		},
	}

	transactions := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Transactions",
			Description: `Transactions lists the full ledger history of one coin, oldest first.`,
			Parameters:  tickParameter,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the coin's ledger entries.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			tick, err := tickArg(args)
			if err != nil {
				return failure(id, "Transactions", err)
			}
			coin := ledger.Coin(tick)
			if coin == nil {
				return failure(id, "Transactions", fmt.Errorf("coin %s is not in the ledger", tick))
			}
			return success(id, "Transactions", renderer.TransactionsMarkdown(coin))
		},
	}

	return []Function{summary, status, transactions}
}
