package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"hospital-admin/internal/apperror"
	"hospital-admin/internal/config"
	"hospital-admin/internal/models"
	"hospital-admin/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// OpenDB returns a store handle and a func that releases it.
type OpenDB func(ctx context.Context) (*gorm.DB, func(), error)

var ErrDuplicateCode = errors.New("access code already exists")

func openFromEnv(ctx context.Context) (*gorm.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	db, err := config.ConnectDB(ctx, cfg.Database, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	return db, func() {
		_ = config.CloseDB(db)
		_ = log.Sync()
	}, nil
}

func accessCodeCmd(open OpenDB) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "access-code",
		Short: "Manage registration access codes",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an access code bound to a role",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, _ := cmd.Flags().GetString("code")
			roleName, _ := cmd.Flags().GetString("role")

			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("--code is required")
			}
			role, ok := models.ParseRole(roleName)
			if !ok {
				return fmt.Errorf("invalid --role %q, expected one of %s", roleName, roleList())
			}

			db, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if err := createAccessCode(cmd.Context(), db, code, role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Access code %s created for role %s\n", code, role)
			return nil
		},
	}
	createCmd.Flags().String("code", "", "Code handed to the user at registration")
	createCmd.Flags().String("role", "", "Role granted by the code: "+roleList())

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List access codes and their roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			codes, err := listAccessCodes(cmd.Context(), db)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tROLE")
			for _, c := range codes {
				fmt.Fprintf(tw, "%s\t%s\n", c.Code, c.Role)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(createCmd, listCmd)
	return cmd
}

func roleList() string {
	names := make([]string, len(models.Roles))
	for i, r := range models.Roles {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}

func createAccessCode(ctx context.Context, db *gorm.DB, code string, role models.Role) error {
	err := db.WithContext(ctx).Create(&models.AccessCode{Code: code, Role: role}).Error
	if apperror.IsDuplicateKey(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateCode, code)
	}
	if err != nil {
		return fmt.Errorf("create access code: %w", err)
	}
	return nil
}

func listAccessCodes(ctx context.Context, db *gorm.DB) ([]models.AccessCode, error) {
	var codes []models.AccessCode
	if err := db.WithContext(ctx).Order("tipo_usuario, codigo").Find(&codes).Error; err != nil {
		return nil, fmt.Errorf("list access codes: %w", err)
	}
	return codes, nil
}
