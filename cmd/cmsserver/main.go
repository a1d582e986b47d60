package main

import (
	"encoding/json"
	"fmt"
	"hash"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/mdouchement/cmsadmin/internal/database"
	"github.com/mdouchement/cmsadmin/internal/model"
	"github.com/mdouchement/cmsadmin/internal/server"
	"github.com/mdouchement/cmsadmin/internal/server/service"
	"github.com/mdouchement/cmsadmin/internal/server/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
)

const dbname = "cmsserver.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &cobra.Command{
		Use:     "cmsserver",
		Short:   "Development backend for the CMS admin console",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    cobra.ExactArgs(0),
	}
	c.PersistentFlags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(initCmd)
	c.AddCommand(reindexCmd)
	c.AddCommand(serverCmd)
	c.AddCommand(consoleCmd)
	c.AddCommand(rmuserCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

// config loads the defaults, the configuration file if any and then the CMSSERVER_* environment variables.
func config() (*koanf.Koanf, error) {
	konf := koanf.New(".")

	err := konf.Load(confmap.Provider(map[string]any{
		"address":        "localhost:7777",
		"database_codec": database.DefaultCodec,
		"admin.email":    "admin@example.com",
	}, "."), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load defaults")
	}

	if cfg != "" {
		if err := konf.Load(file.Provider(cfg), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "could not load configuration file")
		}
	}

	err = konf.Load(env.Provider("CMSSERVER_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "CMSSERVER_")), "__", ".", -1)
	}), nil)
	return konf, errors.Wrap(err, "could not load environment")
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

func kdf(l int, k []byte) []byte {
	nhash := func() hash.Hash {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	}

	payload := make([]byte, l)

	kdf := hkdf.New(nhash, k, nil, nil)
	_, err := io.ReadFull(kdf, payload)
	if err != nil {
		panic(err)
	}

	return payload
}

var (
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Init the database and create the administrator",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			konf, err := config()
			if err != nil {
				return err
			}

			filename := dbnameWithPath(konf.String("database_path"))
			codec := konf.String("database_codec")
			if err = database.StormInit(filename, codec); err != nil {
				return err
			}

			db, err := database.StormOpen(filename, codec)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			email := konf.String("admin.email")
			password := konf.String("admin.password")
			if password == "" {
				password = session.SecureToken(16)
				fmt.Println("Generated password:", password)
			}

			if _, err = service.NewUser(db, nil).Create(email, password); err != nil {
				return errors.Wrapf(err, "could not create %s", email)
			}
			fmt.Println("Administrator created:", email)
			return nil
		},
	}

	//
	reindexCmd = &cobra.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			konf, err := config()
			if err != nil {
				return err
			}

			return database.StormReIndex(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
		},
	}

	//
	//
	serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Start server",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			konf, err := config()
			if err != nil {
				return err
			}

			if konf.String("secret_key") == "" {
				return errors.New("secret_key not found")
			}

			db, err := database.StormOpen(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			engine := server.EchoEngine(server.IOC{
				Version:    version,
				Database:   db,
				SigningKey: kdf(32, konf.MustBytes("secret_key")),
				TokenTTL:   konf.Duration("token_ttl"),
			})
			server.PrintRoutes(engine)

			address := konf.String("address")
			message := "could not run server"
			log.Printf("Server listening on %s\n", address)
			parts := strings.Split(address, ":")
			if len(parts) == 2 && parts[0] == "unix" {
				socketFile := parts[1]
				if _, err := os.Stat(socketFile); err == nil {
					log.Printf("Removing existing %s\n", socketFile)
					os.Remove(socketFile)
				}
				defer os.Remove(socketFile)
				listener, err := net.Listen(parts[0], socketFile)
				if err != nil {
					return err
				}
				return errors.Wrap(engine.Server.Serve(listener), message)
			}
			return errors.Wrap(engine.Start(address), message)
		},
	}

	// cmsserver console "SELECT count(*) FROM events WHERE IsActive = true"
	consoleCmd = &cobra.Command{
		Use:   "console SQL",
		Short: "Run a SELECT statement against the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			konf, err := config()
			if err != nil {
				return err
			}

			sc, err := database.ParseSelect(args[0])
			if err != nil {
				return err
			}

			db, err := database.StormRaw(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			record := database.Tables()[sc.Tablename]
			query := sc.Query(db)

			if sc.Count {
				n, err := query.Count(record)
				if err != nil {
					return errors.Wrap(err, "could not perform query")
				}
				fmt.Println("Count:", n)
				return nil
			}

			records := database.Records(sc.Tablename)
			err = query.Find(records)
			if err == storm.ErrNotFound {
				fmt.Println("[]")
				return nil
			}
			if err != nil {
				return errors.Wrap(err, "could not perform query")
			}

			return jsondump(records)
		},
	}

	//
	rmuserCmd = &cobra.Command{
		Use:   "rmuser EMAIL",
		Short: "Remove an administrator from the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			konf, err := config()
			if err != nil {
				return err
			}

			db, err := database.StormRaw(dbnameWithPath(konf.String("database_path")), konf.String("database_codec"))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			err = db.Select(q.Eq("Email", args[0])).Delete(&model.User{})
			if err == storm.ErrNotFound {
				fmt.Println("No account for this email")
				return nil
			}
			if err != nil {
				return errors.Wrap(err, "delete user")
			}

			fmt.Println("User removed")
			return nil
		},
	}
)

func jsondump(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
