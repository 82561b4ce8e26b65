package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"backoffice/api"
	productapi "backoffice/api/product"
	"backoffice/config"
	"backoffice/domain/auth"
	"backoffice/domain/configuration"
	"backoffice/domain/order"
	"backoffice/domain/user"
	"backoffice/infrastructure/httpclient"
	"backoffice/infrastructure/tokenstore"
	"backoffice/pkg/logger"
	"backoffice/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli holds what every subcommand needs. cfg and tokens may be preset, in
// which case the config file and token store settings are not consulted.
type cli struct {
	configPath string
	cfg        *config.Config
	tokens     auth.TokenStore
	store      *store.Store

	list api.ListParams
}

func newCLI() *cli { return &cli{} }

func (c *cli) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Manage catalogue, orders, coupons and store settings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to config file")

	root.AddCommand(
		c.loginCommand(),
		c.verifyCommand(),
		c.logoutCommand(),
		c.categoriesCommand(),
		c.subCategoriesCommand(),
		c.productsCommand(),
		c.ordersCommand(),
		c.orderCommand(),
		c.transitionCommand(),
		c.couponsCommand(),
		c.configCommand(),
		c.usersCommand(),
		c.uploadCommand(),
	)
	return root
}

func (c *cli) setup(stderr io.Writer) error {
	if c.cfg == nil {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		c.cfg = cfg
		if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}
	if c.tokens == nil {
		tokens, err := tokenstore.New(c.cfg.Auth)
		if err != nil {
			return fmt.Errorf("failed to open token store: %w", err)
		}
		c.tokens = tokens
	}

	client := httpclient.New(httpclient.ConfigFrom(c.cfg),
		httpclient.WithTokenProvider(c.tokens),
		httpclient.WithUnauthorizedHook(func(ctx context.Context, path string) {
			logger.FromContext(ctx).Warn("Session rejected; run `backoffice login` again", zap.String("path", path))
		}),
	)
	c.store = store.New(client, c.tokens, c.cfg.Store, printNotifier(stderr))
	return nil
}

// printNotifier shows notifications on stderr so stdout stays valid JSON.
func printNotifier(w io.Writer) store.Notifier {
	return store.NotifierFunc(func(n store.Notification) {
		mark := "ok"
		if n.Level == store.LevelError {
			mark = "failed"
		}
		fmt.Fprintf(w, "[%s] %s\n", mark, n.Message)
	})
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) listFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&c.list.Page, "page", api.DefaultPage, "Page number, 1-based")
	cmd.Flags().IntVar(&c.list.PageSize, "limit", 0, "Page size (defaults to store.page_size)")
	cmd.Flags().StringVarP(&c.list.Q, "query", "q", "", "Free-text search")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func (c *cli) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login <phone>",
		Short: "Send a one-time password to the phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.store.Session.RequestOTP(cmd.Context(), args[0])
		},
	}
}

func (c *cli) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <phone> <otp>",
		Short: "Exchange the one-time password for a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.store.Session.Verify(cmd.Context(), args[0], args[1])
		},
	}
}

func (c *cli) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.store.Session.Logout()
		},
	}
}

func (c *cli) categoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories by priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.store.Categories.Fetch(cmd.Context(), c.list); err != nil {
				return err
			}
			return printJSON(cmd, c.store.Categories.List().Snapshot())
		},
	}
	c.listFlags(cmd)
	return cmd
}

func (c *cli) subCategoriesCommand() *cobra.Command {
	var parents []int64
	cmd := &cobra.Command{
		Use:   "subcategories",
		Short: "List sub-categories, optionally only those under --parents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if len(parents) > 0 {
				err = c.store.SubCategories.FetchByParents(cmd.Context(), parents)
			} else {
				err = c.store.SubCategories.Fetch(cmd.Context(), c.list)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, c.store.SubCategories.List().Snapshot())
		},
	}
	c.listFlags(cmd)
	cmd.Flags().Int64SliceVar(&parents, "parents", nil, "Parent category ids")
	return cmd
}

func (c *cli) productsCommand() *cobra.Command {
	var filter productapi.ListFilter
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.store.Products.Fetch(cmd.Context(), c.list, filter); err != nil {
				return err
			}
			return printJSON(cmd, c.store.Products.List().Snapshot())
		},
	}
	c.listFlags(cmd)
	cmd.Flags().Int64Var(&filter.CategoryID, "category-id", 0, "Only products in this category")
	return cmd
}

func (c *cli) ordersCommand() *cobra.Command {
	var status string
	var filter order.ListFilter
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if status != "" {
				parsed, err := order.ParseStatus(status)
				if err != nil {
					return err
				}
				filter.Status = parsed
			}
			if err := c.store.Orders.Fetch(cmd.Context(), c.list, filter); err != nil {
				return err
			}
			return printJSON(cmd, c.store.Orders.List().Snapshot())
		},
	}
	c.listFlags(cmd)
	cmd.Flags().StringVar(&status, "status", "", "Only orders in this status")
	cmd.Flags().StringVar(&filter.OrderNumber, "order-number", "", "Exact order number")
	cmd.Flags().StringVar(&filter.PhoneNumber, "phone", "", "Customer phone number")
	return cmd
}

type orderView struct {
	order.OrderDetail
	AllowedTransitions []order.Status `json:"allowed_transitions"`
}

func (c *cli) orderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "order <id>",
		Short: "Show one order with the transitions it allows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			detail, err := c.store.Orders.Select(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, orderView{OrderDetail: detail, AllowedTransitions: c.store.Orders.AllowedTransitions(id)})
		},
	}
}

func (c *cli) transitionCommand() *cobra.Command {
	var comment string
	cmd := &cobra.Command{
		Use:   "transition <id> <status>",
		Short: "Move an order to the next status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			next, err := order.ParseStatus(args[1])
			if err != nil {
				return err
			}
			if _, err := c.store.Orders.Select(cmd.Context(), id); err != nil {
				return err
			}
			updated, err := c.store.Orders.Transition(cmd.Context(), id, next, comment)
			if err != nil {
				return err
			}
			return printJSON(cmd, updated)
		},
	}
	cmd.Flags().StringVar(&comment, "comment", "", "Note recorded with the status change")
	return cmd
}

func (c *cli) couponsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coupons",
		Short: "List coupons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.store.Coupons.Fetch(cmd.Context(), c.list); err != nil {
				return err
			}
			return printJSON(cmd, c.store.Coupons.List().Snapshot())
		},
	}
	c.listFlags(cmd)
	return cmd
}

func (c *cli) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the store configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := c.store.Configuration.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, current)
		},
	}

	var status, announcement string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update store status or announcement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch configuration.Patch
			if cmd.Flags().Changed("store-status") {
				s := configuration.StoreStatus(strings.ToLower(status))
				patch.StoreStatus = &s
			}
			if cmd.Flags().Changed("announcement") {
				patch.AnnouncementText = &announcement
			}
			if _, err := c.store.Configuration.Fetch(cmd.Context()); err != nil {
				return err
			}
			updated, err := c.store.Configuration.Update(cmd.Context(), patch)
			if err != nil {
				return err
			}
			return printJSON(cmd, updated)
		},
	}
	set.Flags().StringVar(&status, "store-status", "", "open or closed")
	set.Flags().StringVar(&announcement, "announcement", "", "Banner text shown to shoppers")
	cmd.AddCommand(set)
	return cmd
}

func (c *cli) usersCommand() *cobra.Command {
	var filter user.ListFilter
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.store.Users.Fetch(cmd.Context(), c.list, filter); err != nil {
				return err
			}
			return printJSON(cmd, c.store.Users.List().Snapshot())
		},
	}
	c.listFlags(cmd)
	cmd.Flags().StringVar(&filter.PhoneNumber, "phone", "", "Customer phone number")
	return cmd
}

func (c *cli) uploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload images and print their URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]store.File, 0, len(args))
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				files = append(files, store.File{Name: filepath.Base(path), Reader: f})
			}
			result, err := c.store.Uploads.UploadAll(cmd.Context(), files)
			if printErr := printJSON(cmd, result.URLs()); printErr != nil {
				return printErr
			}
			return err
		},
	}
}
