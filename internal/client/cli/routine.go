package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Amelia-Slapek/clea-client/internal/client/routine"
)

// Routine dispatches the "routine" subcommands against the builder.
//
// Subcommands:
//
//	add <product-id>    — add a product to the selection
//	rm <product-id>     — remove a product from the selection
//	clear               — empty the selection
//	show                — print the selection and the last report
//	check               — force a compatibility check now and print it
//	save                — save the selection as a named routine
//	list                — list routines saved on the server
//	load <routine-id>   — replace the selection with a saved routine
//	delete <routine-id> — delete a saved routine
func (a *App) Routine(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: routine add|rm|clear|show|check|save|list|load|delete")
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			printlnFn("Usage: routine add <product-id>")
			return nil
		}
		if a.builder.Add(args[1]) {
			printlnFn("Added", args[1], "- checking compatibility...")
		} else {
			printlnFn(args[1], "is already selected")
		}

	case "rm":
		if len(args) < 2 {
			printlnFn("Usage: routine rm <product-id>")
			return nil
		}
		if a.builder.Remove(args[1]) {
			printlnFn("Removed", args[1])
		} else {
			printlnFn(args[1], "is not selected")
		}

	case "clear":
		a.builder.ClearSelection()
		printlnFn("Selection cleared")

	case "show":
		a.printSelection()

	case "check":
		a.builder.Flush(ctx)
		a.printSelection()

	case "save":
		return a.saveRoutine(ctx)

	case "list":
		return a.listRoutines(ctx)

	case "load":
		if len(args) < 2 {
			printlnFn("Usage: routine load <routine-id>")
			return nil
		}
		return a.loadRoutine(ctx, args[1])

	case "delete":
		if len(args) < 2 {
			printlnFn("Usage: routine delete <routine-id>")
			return nil
		}
		if err := a.builder.Delete(ctx, args[1]); err != nil {
			printlnFn("Error:", err.Error())
			return err
		}
		printlnFn("Deleted routine", args[1])

	default:
		printlnFn("Unknown routine subcommand:", args[0])
	}
	return nil
}

func (a *App) printSelection() {
	sel := a.builder.Selection()
	if len(sel) == 0 {
		printlnFn("No products selected")
		return
	}
	printlnFn("Selected products:", strings.Join(sel, ", "))

	report := a.builder.Report()
	switch {
	case report == nil:
		printlnFn("No compatibility report (need at least 2 products)")
	case report.Compatible:
		printlnFn("Products are compatible")
	default:
		for _, c := range report.Conflicts {
			printlnFn(fmt.Sprintf("Conflict: %s vs %s (%s)", c.ProductA, c.ProductB, c.Reason))
		}
	}
	if report != nil {
		for _, w := range report.AllergenWarnings {
			printlnFn(fmt.Sprintf("Allergen warning: %s contains %s", w.ProductID, w.Ingredient))
		}
	}
}

func (a *App) saveRoutine(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Routine name", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}
	timeOfDay, err := getSimpleText(a.reader, "Time of day (morning/evening)", os.Stdout)
	if err != nil {
		return err
	}

	saved, err := a.builder.Save(ctx, "", name, description, timeOfDay)
	if err != nil {
		if errors.Is(err, routine.ErrLoginRequired) {
			printlnFn("Please log in first")
		} else {
			printlnFn("Error:", err.Error())
		}
		return err
	}
	printlnFn("Saved routine", saved.Name, "with id", saved.ID)
	return nil
}

func (a *App) listRoutines(ctx context.Context) error {
	routines, err := a.builder.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if len(routines) == 0 {
		printlnFn("No saved routines")
		return nil
	}
	for _, r := range routines {
		printlnFn(fmt.Sprintf("%s  %s (%s, %d products)", r.ID, r.Name, r.TimeOfDay, len(r.ProductIDs)))
	}
	return nil
}

func (a *App) loadRoutine(ctx context.Context, routineID string) error {
	routines, err := a.builder.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, r := range routines {
		if r.ID == routineID {
			a.builder.Load(r)
			printlnFn("Loaded routine", r.Name, "- checking compatibility...")
			return nil
		}
	}
	printlnFn("No routine with id", routineID)
	return nil
}
