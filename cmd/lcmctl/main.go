package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type options struct {
	addr      string
	token     string
	host      string
	timeout   time.Duration
	chunkSize int
	natsURL   string
	subject   string
	verbose   bool

	fs       afero.Fs
	dialOpts []grpc.DialOption
	log      *zap.Logger
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "lcmctl",
		Short:         "Drive the osplugin application lifecycle service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if o.log != nil {
				return nil
			}
			cfg := zap.NewDevelopmentConfig()
			if !o.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
			}
			log, err := cfg.Build()
			if err != nil {
				return err
			}
			o.log = log
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.addr, "addr", "localhost:8234", "osplugin gRPC address")
	pf.StringVar(&o.token, "token", os.Getenv("LCMCTL_ACCESS_TOKEN"), "access token (default $LCMCTL_ACCESS_TOKEN)")
	pf.StringVar(&o.host, "host", "", "IP address of the target backend host")
	pf.DurationVar(&o.timeout, "timeout", time.Minute, "per call timeout")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "log request details")

	root.AddCommand(
		instantiateCmd(o),
		terminateCmd(o),
		queryCmd(o),
		eventsCmd(o),
		uploadConfigCmd(o),
		removeConfigCmd(o),
		uploadPackageCmd(o),
		deletePackageCmd(o),
		watchCmd(o),
	)
	return root
}

func main() {
	o := &options{
		fs:       afero.NewOsFs(),
		dialOpts: []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())},
	}
	if err := newRootCmd(o).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
