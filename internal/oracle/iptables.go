package oracle

import (
	"context"
	"os/exec"
	"strings"

	"icmpgen/internal/family"
	"icmpgen/internal/logger"

	"github.com/coreos/go-iptables/iptables"
	"github.com/hashicorp/go-multierror"
	"github.com/tevino/abool"
)

// Config locates the scratch chain a run may flush at will.
type Config struct {
	// Table holds the scratch chain.
	Table string
	// Chain is flushed before every probe and deleted on Close. It must
	// belong exclusively to this process.
	Chain string
	// Path overrides the binary used for help output. Empty means the
	// family's command resolved via PATH.
	Path string
}

// DefaultConfig returns the scratch chain used when nothing overrides it.
func DefaultConfig() Config {
	return Config{Table: "filter", Chain: "ICMPGEN-PROBE"}
}

// chainTool is the slice of the go-iptables client the oracle drives,
// narrowed so tests can stand in an in-memory chain.
type chainTool interface {
	ClearChain(table, chain string) error
	Append(table, chain string, rulespec ...string) error
	Stats(table, chain string) ([][]string, error)
	DeleteChain(table, chain string) error
}

var (
	_ Oracle    = (*Iptables)(nil)
	_ chainTool = (*iptables.IPTables)(nil)
)

// Iptables is the production Oracle. Open acquires a scratch chain for the
// lifetime of the run; Close flushes and deletes it.
type Iptables struct {
	ipt      chainTool
	fam      family.Family
	cfg      Config
	released *abool.AtomicBool
}

// Open connects to the family's iptables and creates or flushes the scratch
// chain.
func Open(fam family.Family, cfg Config) (*Iptables, error) {
	def := DefaultConfig()
	if cfg.Table == "" {
		cfg.Table = def.Table
	}
	if cfg.Chain == "" {
		cfg.Chain = def.Chain
	}

	ipt, err := iptables.NewWithProtocol(fam.Protocol())
	if err != nil {
		return nil, execErr(err, fam.Command())
	}
	// ClearChain creates the chain when absent and flushes it otherwise.
	if err := ipt.ClearChain(cfg.Table, cfg.Chain); err != nil {
		return nil, execErr(err, fam.Command(), "-t", cfg.Table, "-F", cfg.Chain)
	}
	logger.Log.Debugf("acquired scratch chain %s/%s", cfg.Table, cfg.Chain)

	return &Iptables{ipt: ipt, fam: fam, cfg: cfg, released: abool.New()}, nil
}

func (o *Iptables) binary() string {
	if o.cfg.Path != "" {
		return o.cfg.Path
	}
	return o.fam.Command()
}

// HelpText runs the tool's self-help for the family's ICMP match module.
func (o *Iptables) HelpText(ctx context.Context) (string, error) {
	return FetchHelp(ctx, o.binary(), o.fam.MatchProtocol())
}

// FetchHelp captures the help output naming the given match protocol. It
// needs no privilege and mutates nothing.
func FetchHelp(ctx context.Context, bin, proto string) (string, error) {
	out, err := exec.CommandContext(ctx, bin, "-p", proto, "-h").Output()
	if err != nil {
		return "", execErr(err, bin, "-p", proto, "-h")
	}
	return string(out), nil
}

// Probe flushes the scratch chain and appends a single rule matching expr.
// The RETURN target is inert in a chain nothing jumps to and keeps the
// numeric listing column-stable.
func (o *Iptables) Probe(ctx context.Context, expr string) error {
	if err := o.ipt.ClearChain(o.cfg.Table, o.cfg.Chain); err != nil {
		return execErr(err, o.fam.Command(), "-t", o.cfg.Table, "-F", o.cfg.Chain)
	}
	rulespec := []string{"-p", o.fam.MatchProtocol(), o.fam.MatchFlag(), expr, "-j", "RETURN"}
	if err := o.ipt.Append(o.cfg.Table, o.cfg.Chain, rulespec...); err != nil {
		argv := append([]string{o.fam.Command(), "-t", o.cfg.Table, "-A", o.cfg.Chain}, rulespec...)
		return execErr(err, argv...)
	}
	return nil
}

// ListRules reads the scratch chain back numerically. Rows come from the
// tool's verbose counter listing; each is re-joined into one line so the
// match options, e.g. "icmptype 8 code 0", stay scannable as text.
func (o *Iptables) ListRules(ctx context.Context) (string, error) {
	rows, err := o.ipt.Stats(o.cfg.Table, o.cfg.Chain)
	if err != nil {
		return "", execErr(err, o.fam.Command(), "-t", o.cfg.Table, "-L", o.cfg.Chain, "-nvx")
	}
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, " "))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Close flushes and deletes the scratch chain. It is safe to call from both
// the defer path and the signal path; only the first call releases.
func (o *Iptables) Close() error {
	if !o.released.SetToIf(false, true) {
		return nil
	}
	logger.Log.Debugf("releasing scratch chain %s/%s", o.cfg.Table, o.cfg.Chain)

	var result *multierror.Error
	if err := o.ipt.ClearChain(o.cfg.Table, o.cfg.Chain); err != nil {
		result = multierror.Append(result, err)
	}
	if err := o.ipt.DeleteChain(o.cfg.Table, o.cfg.Chain); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return execErr(err, o.fam.Command(), "-t", o.cfg.Table, "-X", o.cfg.Chain)
	}
	return nil
}
