package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"icmpgen/internal/family"
	"icmpgen/internal/gen"
	"icmpgen/internal/help"
	"icmpgen/internal/logger"
	"icmpgen/internal/oracle"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

var (
	flagFamily   string
	flagTable    string
	flagChain    string
	flagFormat   string
	flagOutput   string
	flagIptables string
	flagVerbose  bool
	flagJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "icmpgen",
	Short: "Generate ICMP type and code tables from the installed iptables",
	Long: `icmpgen asks the locally installed iptables which ICMP type and code
names it accepts, probes each name through a scratch chain to recover its
numeric value, and writes the result as a static lookup table.

Probing appends rules, so generation needs the privilege to modify the
chosen table. The scratch chain is deleted when the run ends.`,
	Version:      "1.0.0",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(flagVerbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	RunE: runGenerate,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the advertised type and code names without probing",
	Long: `inspect parses the tool's help output and prints the declared names.
It appends no rules and needs no privilege.`,
	RunE: runInspect,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFamily, "family", "inet", "address family to generate for (inet or inet6)")
	rootCmd.PersistentFlags().StringVar(&flagIptables, "iptables", "", "path of the iptables binary (default: the family's command on PATH)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.Flags().StringVar(&flagTable, "table", "filter", "table holding the scratch chain")
	rootCmd.Flags().StringVar(&flagChain, "chain", "ICMPGEN-PROBE", "scratch chain, flushed repeatedly and deleted on exit")
	rootCmd.Flags().StringVar(&flagFormat, "format", "python", "output format (python or go)")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "-", "write the table to this file instead of stdout")

	inspectCmd.Flags().BoolVar(&flagJSON, "json", false, "print the inventory as JSON")
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	fam, err := family.Parse(flagFamily)
	if err != nil {
		return err
	}
	format, err := gen.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	if unix.Geteuid() != 0 {
		logger.Log.Warnf("not running as root; modifying the %s/%s chain will likely fail", flagTable, flagChain)
	}

	o, err := oracle.Open(fam, oracle.Config{Table: flagTable, Chain: flagChain, Path: flagIptables})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := o.Close(); cerr != nil {
			logger.Log.Warnf("releasing scratch chain: %v", cerr)
		}
	}()

	// Release the scratch chain even when interrupted mid-probe.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigs
		logger.Log.Warnf("caught %v, releasing scratch chain", s)
		if cerr := o.Close(); cerr != nil {
			logger.Log.Warnf("releasing scratch chain: %v", cerr)
		}
		logger.Sync()
		os.Exit(1)
	}()

	opts := gen.Options{Family: fam, Format: format, Invocation: os.Args[0]}
	return writeArtifact(flagOutput, func(w io.Writer) error {
		return gen.Run(cmd.Context(), o, opts, w)
	})
}

// writeArtifact sends one generated table to path; "-" or empty means
// stdout. File output is staged through memory so a failed run never
// truncates an existing artifact.
func writeArtifact(path string, run func(io.Writer) error) error {
	if path == "" || path == "-" {
		return run(os.Stdout)
	}
	var buf bytes.Buffer
	if err := run(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func runInspect(cmd *cobra.Command, args []string) error {
	fam, err := family.Parse(flagFamily)
	if err != nil {
		return err
	}
	bin := flagIptables
	if bin == "" {
		bin = fam.Command()
	}

	buf, err := oracle.FetchHelp(cmd.Context(), bin, fam.MatchProtocol())
	if err != nil {
		return err
	}
	decls, err := help.Parse(buf, fam.HelpMarker())
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(decls)
	}
	for _, d := range decls {
		if d.Alias != "" {
			fmt.Printf("%s (%s)\n", d.Name, d.Alias)
		} else {
			fmt.Println(d.Name)
		}
		for _, c := range d.Codes {
			fmt.Printf("   %s\n", c)
		}
	}
	return nil
}
