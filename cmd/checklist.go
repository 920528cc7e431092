package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Miyu0603/tripledger"
	"github.com/google/subcommands"
)

// checklistCmd serves one checklist; it is registered once per list type.
type checklistCmd struct {
	typ tripledger.ListType

	add      string
	category string
	toggle   string
	rename   string
	name     string
	remove   string
}

func (p *checklistCmd) Name() string { return string(p.typ) }
func (p *checklistCmd) Synopsis() string {
	switch p.typ {
	case tripledger.PrepList:
		return "manage the pre-trip preparation checklist"
	case tripledger.LuggageList:
		return "manage the luggage packing checklist"
	default:
		return "manage the shopping checklist"
	}
}
func (p *checklistCmd) Usage() string {
	return fmt.Sprintf(`tlc %[1]s [-add <name> [-cat carry-on|checked]] [-toggle <id>] [-rename <id> -name <new>] [-rm <id>]

  Without flags, shows the %[1]s checklist. Checklists are purely local:
  they live in the cache directory and never sync to the remote store.
  A fresh list is seeded with built-in defaults.
`, p.typ)
}

func (p *checklistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.add, "add", "", "Add a new item with this name.")
	f.StringVar(&p.toggle, "toggle", "", "Flip the completed mark of this item id.")
	f.StringVar(&p.rename, "rename", "", "Id of the item to rename (requires -name).")
	f.StringVar(&p.name, "name", "", "New name for -rename.")
	f.StringVar(&p.remove, "rm", "", "Remove this item id.")
	if p.typ == tripledger.LuggageList {
		f.StringVar(&p.category, "cat", "", "Luggage tab for -add (carry-on or checked, default checked).")
	}
}

func (p *checklistCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store := tripledger.OpenChecklistStore(appConfig().DataDir, p.typ)

	category := tripledger.LuggageCategory(p.category)
	if category != "" && category != tripledger.CarryOn && category != tripledger.Checked {
		fmt.Fprintf(os.Stderr, "Error: unknown luggage tab %q (carry-on or checked)\n", p.category)
		return subcommands.ExitUsageError
	}

	mutated := false
	if p.add != "" {
		item, err := store.Add(p.add, category)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Added %q (%s)\n", item.Name, item.ID)
		mutated = true
	}
	if p.toggle != "" {
		item, found, err := store.Toggle(p.toggle)
		if err != nil || !found {
			fmt.Fprintf(os.Stderr, "Error: could not toggle %q: %v\n", p.toggle, err)
			return subcommands.ExitFailure
		}
		mark := "unchecked"
		if item.Completed {
			mark = "done"
		}
		fmt.Printf("Marked %q %s\n", item.Name, mark)
		mutated = true
	}
	if p.rename != "" {
		item, found, err := store.Rename(p.rename, p.name)
		if err != nil || !found {
			fmt.Fprintf(os.Stderr, "Error: could not rename %q: %v\n", p.rename, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Renamed to %q\n", item.Name)
		mutated = true
	}
	if p.remove != "" {
		found, err := store.Remove(p.remove)
		if err != nil || !found {
			fmt.Fprintf(os.Stderr, "Error: could not remove %q: %v\n", p.remove, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Removed %s\n", p.remove)
		mutated = true
	}
	if mutated {
		return subcommands.ExitSuccess
	}

	printMarkdown(p.render(store))
	return subcommands.ExitSuccess
}

func (p *checklistCmd) render(store *tripledger.ChecklistStore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", strings.ToUpper(string(p.typ[:1]))+string(p.typ[1:]))

	section := func(title string, category tripledger.LuggageCategory) {
		items := store.Items(category)
		if len(items) == 0 {
			return
		}
		if title != "" {
			fmt.Fprintf(&b, "## %s\n\n", title)
		}
		for _, it := range items {
			mark := " "
			if it.Completed {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s", mark, it.Name)
			if it.Notes != "" {
				fmt.Fprintf(&b, " (%s)", it.Notes)
			}
			fmt.Fprintf(&b, " `%s`\n", it.ID)
		}
		fmt.Fprintln(&b)
	}

	if p.typ == tripledger.LuggageList {
		section("Carry-on", tripledger.CarryOn)
		section("Checked", tripledger.Checked)
	} else {
		section("", "")
	}
	return b.String()
}
