package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/invoiceflow/site/excel"
	"github.com/invoiceflow/site/invoice"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/exception"
	"gopkg.in/yaml.v3"
)

var invoiceOutput string

var invoiceCmd = &cobra.Command{
	Use:   "invoice calc|pdf|xlsx <file>",
	Short: "Calculate an invoice or write it as PDF or XLSX",
	Long:  "Calculate an invoice or write it as PDF or XLSX, the invoice file is YAML or JSON",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		defer func() {
			err := exception.Catch(recover())
			if err != nil {
				fmt.Println(color.RedString("Fatal: %s", err.Error()))
				os.Exit(1)
			}
		}()

		if err := Invoice(cmd.OutOrStdout(), args[0], args[1], invoiceOutput); err != nil {
			fmt.Println(color.RedString("Fatal: %s", err.Error()))
			os.Exit(1)
		}
	},
}

func init() {
	invoiceCmd.Flags().StringVarP(&invoiceOutput, "output", "o", "", "Output file, defaults to the invoice file name")
}

// Invoice run an invoice action on the invoice file: calc prints the totals,
// pdf and xlsx validate the invoice then write the document to output.
func Invoice(w io.Writer, action string, file string, output string) error {
	inv, err := LoadInvoice(file)
	if err != nil {
		return err
	}

	switch action {
	case "calc":
		printTotals(w, inv)
		if errs := invoice.FieldErrors(inv.Validate()); len(errs) > 0 {
			fmt.Fprintln(w, color.YellowString("%d field(s) need attention:", len(errs)))
			printFieldErrors(w, errs)
		}
		return nil

	case "pdf", "xlsx":
		if err := inv.Validate(); err != nil {
			printFieldErrors(w, invoice.FieldErrors(err))
			return fmt.Errorf("invoice %s is not valid", inv.Number)
		}

		if output == "" {
			output = filepath.Join(filepath.Dir(file), inv.Filename(action))
		}

		var buf bytes.Buffer
		if action == "pdf" {
			err = invoice.RenderPDF(&buf, inv)
		} else {
			err = excel.Write(inv, &buf)
		}
		if err != nil {
			return err
		}

		if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
			return err
		}
		fmt.Fprintln(w, color.GreenString("✨DONE✨"), color.WhiteString(output))
		return nil
	}

	return fmt.Errorf("unknown action %s, use calc, pdf or xlsx", action)
}

// LoadInvoice read an invoice from a YAML or JSON file. The document is
// checked against the invoice schema and recalculated.
func LoadInvoice(file string) (*invoice.InvoiceData, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		data, err = jsoniter.Marshal(plainValues(doc))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	case ".json":
	default:
		return nil, fmt.Errorf("%s: unsupported file type, use .yaml or .json", file)
	}

	inv, err := invoice.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return inv, nil
}

// plainValues dates become strings so the document passes the schema
func plainValues(v interface{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		for key, item := range value {
			value[key] = plainValues(item)
		}
		return value
	case []interface{}:
		for i, item := range value {
			value[i] = plainValues(item)
		}
		return value
	case time.Time:
		return value.Format(invoice.DateLayout)
	}
	return v
}

func printTotals(w io.Writer, inv *invoice.InvoiceData) {
	s := inv.Summarize()
	row := func(label string, value string) {
		fmt.Fprintf(w, "%-28s %14s\n", label, value)
	}

	fmt.Fprintln(w, color.WhiteString("Invoice %s", inv.Number))
	fmt.Fprintln(w, color.WhiteString("--------------------------------------------"))
	for _, item := range inv.Filled() {
		row(item.Description+" × "+invoice.FormatQuantity(item.Quantity), invoice.FormatCurrency(item.Amount, inv.Currency))
	}
	fmt.Fprintln(w, color.WhiteString("--------------------------------------------"))
	row("Subtotal", s.Subtotal)
	row(s.VATLabel, s.VATAmount)
	if s.Discount != "" {
		row("Discount", "-"+s.Discount)
	}
	row("Total", s.TotalAmount)
	if s.CISLabel != "" {
		row(s.CISLabel, "-"+s.CISDeduction)
	}
	row("Amount due", s.AmountDue)
	if s.Notice != "" {
		fmt.Fprintln(w, s.Notice)
	}
}

func printFieldErrors(w io.Writer, errs []invoice.FieldError) {
	for _, e := range errs {
		fmt.Fprintln(w, color.RedString("  %s", e.Field), e.Message)
	}
}
