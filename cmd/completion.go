package cmd

import (
	"flag"
	"slices"

	"github.com/etnz/forex/date"
	"github.com/etnz/forex/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors complete flag values by flag name, across commands.
var flagPredictors = map[string]complete.Predictor{
	"supplier":   complete.PredictFunc(predictSuppliers),
	"rm":         complete.PredictFunc(predictSuppliers),
	"c":          complete.PredictFunc(predictCurrencies),
	"toggle":     complete.PredictFunc(predictCurrencies),
	"r":          predict.Set{date.QuickToday, date.QuickThisMonth, date.QuickLastMonth, date.QuickAll},
	"kind":       predict.Set{"receipt", "sale"},
	"o":          predict.Or(predict.Files("*.xlsx"), predict.Files("*.csv")),
	"ledger":     predict.Files("*.jsonl"),
	"settings":   predict.Files("*.json"),
	"attachment": predict.Files("*"),
	"model":      predict.Something,
}

// argPredictors complete the positional arguments of commands.
var argPredictors = map[string]complete.Predictor{
	"import": predict.Files("*.json"),
	"topic":  complete.PredictFunc(predictTopics),
}

// Completion returns the shell completion of the commands registered in c.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{},
	}
	c.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictor(f.Name) })
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		fs := flag.NewFlagSet(sc.Name(), flag.ContinueOnError)
		sc.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}, Args: argPredictors[sc.Name()]}
		fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predictor(f.Name) })
		root.Sub[sc.Name()] = sub
	})
	return root
}

func predictor(name string) complete.Predictor {
	if p, ok := flagPredictors[name]; ok {
		return p
	}
	return predict.Something
}

// predictSuppliers offers the suppliers of the settings and of the ledger.
func predictSuppliers(prefix string) []string {
	var names []string
	if s, err := DecodeSettings(); err == nil {
		names = append(names, s.Suppliers...)
	}
	if l, err := DecodeLedger(); err == nil {
		for _, s := range l.Inventory().Suppliers() {
			if !slices.Contains(names, s) {
				names = append(names, s)
			}
		}
	}
	return names
}

func predictCurrencies(prefix string) []string {
	s, err := DecodeSettings()
	if err != nil {
		return nil
	}
	return s.Currencies
}

func predictTopics(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return topics
}

// Known reports whether name is a command registered in c.
func Known(c *subcommands.Commander, name string) bool {
	known := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		known = known || sc.Name() == name
	})
	return known
}
