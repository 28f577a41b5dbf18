package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/shopdash/shopdash-ui/config"
	"github.com/shopdash/shopdash-ui/internal/adapters/filestore"
	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
	"github.com/shopdash/shopdash-ui/internal/http/validation"
	"github.com/shopdash/shopdash-ui/internal/service"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 1024
)

type loginOptions struct {
	Email         string
	Password      string
	PasswordStdin bool
}

func parseLoginFlags(cmdCtx *commandContext, args []string) (loginOptions, error) {
	var opts loginOptions
	fs := newFlagSet(cmdCtx, "login")
	fs.StringVar(&opts.Email, "email", "", "account email (prompted when empty)")
	fs.StringVar(&opts.Password, "password", "", "account password; visible in process listings, prefer the prompt")
	fs.BoolVar(&opts.PasswordStdin, "password-stdin", false, "read the password from stdin")
	if err := parseFlags(fs, args); err != nil {
		return opts, err
	}
	return opts, nil
}

// passwordFlagWarning is printed when a password arrives on the command line.
const passwordFlagWarning = "Warning: --password is visible to other local users; use the prompt or --password-stdin."

// prompter reads answers line by line from the command input.
type prompter struct {
	src io.Reader
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmdCtx *commandContext) *prompter {
	return &prompter{src: cmdCtx.In, in: bufio.NewReader(cmdCtx.In), out: cmdCtx.Err}
}

// terminal returns the input's file descriptor when it is an interactive terminal.
func (p *prompter) terminal() (int, bool) {
	f, ok := p.src.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// askSecret prompts without echo on a terminal. Piped input is read as a
// plain line so scripts keep working.
func (p *prompter) askSecret(label string) (string, error) {
	fd, ok := p.terminal()
	if !ok {
		return p.ask(label)
	}
	if err := writef(p.out, "%s: ", label); err != nil {
		return "", err
	}
	secret, err := term.ReadPassword(fd)
	// The user's Enter was not echoed either.
	_ = writeln(p.out)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return string(secret), nil
}

func (p *prompter) ask(label string) (string, error) {
	if label != "" {
		if err := writef(p.out, "%s: ", label); err != nil {
			return "", err
		}
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		what := strings.ToLower(label)
		if what == "" {
			what = "input"
		}
		return "", fmt.Errorf("read %s: %w", what, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	opts, err := parseLoginFlags(cmdCtx, args)
	if err != nil {
		return err
	}

	p := newPrompter(cmdCtx)
	if opts.Password != "" {
		_ = writeln(cmdCtx.Err, passwordFlagWarning)
	}
	if opts.PasswordStdin {
		if opts.Password, err = p.ask(""); err != nil {
			return err
		}
	}
	if strings.TrimSpace(opts.Email) == "" {
		if opts.Email, err = p.ask("Email"); err != nil {
			return err
		}
	}
	if opts.Password == "" {
		if opts.Password, err = p.askSecret("Password"); err != nil {
			return err
		}
	}

	fv := validation.New().
		Validate("email", strings.TrimSpace(opts.Email), validation.Email("Email")).
		Validate("password", opts.Password, validation.Required("Password", maxPasswordLength))
	if err = fieldErrors(fv); err != nil {
		return err
	}

	s, err := openSession(cmdCtx)
	if err != nil {
		return err
	}
	defer s.Close(cmdCtx)

	if err = s.session.Login(cmdCtx.Ctx, opts.Email, opts.Password); err != nil {
		return errors.New(apperrors.UserMessage(err, "Login failed"))
	}
	return printSignedIn(cmdCtx, s.session.Snapshot())
}

type registerOptions struct {
	Input         domainauth.RegisterInput
	PasswordStdin bool
}

func parseRegisterFlags(cmdCtx *commandContext, args []string) (registerOptions, error) {
	var opts registerOptions
	fs := newFlagSet(cmdCtx, "register")
	fs.StringVar(&opts.Input.Name, "name", "", "your name")
	fs.StringVar(&opts.Input.Email, "email", "", "account email")
	fs.StringVar(&opts.Input.Password, "password", "", "account password; prompted on a terminal when empty")
	fs.BoolVar(&opts.PasswordStdin, "password-stdin", false, "read the password from stdin")
	fs.StringVar(&opts.Input.TenantName, "tenant", "", "store name")
	fs.StringVar(&opts.Input.ShopifyDomain, "shopify-domain", "", "shop domain, e.g. my-store.myshopify.com")
	if err := parseFlags(fs, args); err != nil {
		return opts, err
	}
	return opts, nil
}

func runRegister(cmdCtx *commandContext, args []string) error {
	opts, err := parseRegisterFlags(cmdCtx, args)
	if err != nil {
		return err
	}
	in := opts.Input
	p := newPrompter(cmdCtx)
	if in.Password != "" {
		_ = writeln(cmdCtx.Err, passwordFlagWarning)
	}
	switch {
	case opts.PasswordStdin:
		if in.Password, err = p.ask(""); err != nil {
			return err
		}
	case in.Password == "":
		if _, interactive := p.terminal(); interactive {
			if in.Password, err = p.askSecret("Password"); err != nil {
				return err
			}
		}
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.TenantName = strings.TrimSpace(in.TenantName)
	in.ShopifyDomain = strings.TrimSpace(in.ShopifyDomain)

	fv := validation.New().
		Validate("name", in.Name, validation.Required("Name", 100)).
		Validate("email", in.Email, validation.Email("Email")).
		Validate("password", in.Password, validation.MinLength("Password", minPasswordLength)).
		Validate("tenant", in.TenantName, validation.Required("Store name", 100)).
		Validate("shopify-domain", in.ShopifyDomain, validation.ShopifyDomain("Shopify domain"))
	if err = fieldErrors(fv); err != nil {
		return err
	}

	s, err := openSession(cmdCtx)
	if err != nil {
		return err
	}
	defer s.Close(cmdCtx)

	if err = s.session.Register(cmdCtx.Ctx, in); err != nil {
		return errors.New(apperrors.UserMessage(err, "Registration failed"))
	}
	return printSignedIn(cmdCtx, s.session.Snapshot())
}

func printSignedIn(cmdCtx *commandContext, snap service.SessionSnapshot) error {
	email, tenant := "", ""
	if snap.User != nil {
		email = snap.User.Email
	}
	if snap.Tenant != nil {
		tenant = snap.Tenant.Name
	}
	return writef(cmdCtx.Out, "Logged in as %s (%s), profile %q\n", dash(email), dash(tenant), cmdCtx.Config.CLI.Profile)
}

func runLogout(cmdCtx *commandContext, args []string) error {
	if err := parseFlags(newFlagSet(cmdCtx, "logout"), args); err != nil {
		return err
	}
	s, err := openSession(cmdCtx)
	if err != nil {
		return err
	}
	defer s.Close(cmdCtx)

	s.session.Logout(cmdCtx.Ctx)
	return writef(cmdCtx.Out, "Logged out of profile %q\n", cmdCtx.Config.CLI.Profile)
}

type whoami struct {
	Profile   string             `json:"profile"`
	Store     string             `json:"store"`
	User      *domainauth.User   `json:"user"`
	Tenant    *domainauth.Tenant `json:"tenant"`
	ExpiresAt *time.Time         `json:"expiresAt,omitempty"`
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	out, err := parseOutput(cmdCtx, "whoami", args, nil)
	if err != nil {
		return err
	}

	return withSession(cmdCtx, func(_ context.Context, s *cliSession) error {
		snap := s.session.Snapshot()
		info := whoami{
			Profile:   cmdCtx.Config.CLI.Profile,
			Store:     string(cmdCtx.Config.CLI.CredentialStore),
			User:      snap.User,
			Tenant:    snap.Tenant,
			ExpiresAt: credentialExpiry(cmdCtx, snap.Token),
		}
		return emit(cmdCtx.Out, out, info, func(tw io.Writer) error {
			rows := [][2]string{
				{"Profile", info.Profile},
				{"Store", info.Store},
				{"User", userLabel(info.User)},
				{"Role", roleOf(info.User)},
				{"Tenant", tenantLabel(info.Tenant)},
				{"Expires", timestampPtr(info.ExpiresAt)},
			}
			for _, row := range rows {
				if err := writef(tw, "%s:\t%s\n", row[0], row[1]); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// credentialExpiry prefers the expiry the file store recorded and falls back
// to the token's own exp claim.
func credentialExpiry(cmdCtx *commandContext, token string) *time.Time {
	cfg := cmdCtx.Config.CLI
	if cfg.CredentialStore == config.CredentialStoreFile {
		if cred, err := filestore.New(cfg.ConfigDir).Credential(cfg.Profile); err == nil && !cred.ExpiresAt.IsZero() {
			return &cred.ExpiresAt
		}
	}
	if info := service.InspectToken(token); !info.ExpiresAt.IsZero() {
		return &info.ExpiresAt
	}
	return nil
}

func fieldErrors(fv *validation.FieldValidator) error {
	if fv.Valid() {
		return nil
	}
	errs := fv.FieldErrors()
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("--%s: %s", apperrors.GetField(e), e.Message))
	}
	return usageErrorf("%s", strings.Join(msgs, "; "))
}

func userLabel(u *domainauth.User) string {
	if u == nil {
		return "-"
	}
	if u.Name == "" {
		return u.Email
	}
	return fmt.Sprintf("%s <%s>", u.Name, u.Email)
}

func roleOf(u *domainauth.User) string {
	if u == nil {
		return "-"
	}
	return dash(string(u.Role))
}

func tenantLabel(t *domainauth.Tenant) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", t.Name, dash(t.ShopifyDomain))
}
