package run

import (
	"fmt"
	"io"
	"os"

	"github.com/ValentinKolb/echoprobe/cmd/util"
	"github.com/ValentinKolb/echoprobe/lib/probe"
	"github.com/ValentinKolb/echoprobe/rpc/client"
	"github.com/ValentinKolb/echoprobe/rpc/common"
	"github.com/ValentinKolb/echoprobe/rpc/naming"
	"github.com/ValentinKolb/echoprobe/rpc/serializer"
	"github.com/ValentinKolb/echoprobe/rpc/transport/http"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	runConfig     = probe.DefaultConfig()
	runSerializer serializer.IRPCSerializer
	RunCmd        = &cobra.Command{
		Use:   "run",
		Short: "Run the echo verification loop",
		Long: `Look up the echo component, pin strong affinity to the endpoint and check that a short and a large message are echoed unchanged, as many times as --loops says.
The configuration can be set via command line flags, environment variables or a config file. The format of the environment variables is ECHOPROBE_<flag> (e.g. ECHOPROBE_LOOPS=3)`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE:      processConfig,
		RunE:         run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// add flags
	key := "loops"
	RunCmd.Flags().Int(key, probe.DefaultLoops, util.WrapString("How many lookup and echo iterations to run"))

	key = "ssl"
	RunCmd.Flags().Bool(key, false, util.WrapString("Use the https endpoint instead of the http endpoint"))

	key = "http-endpoint"
	RunCmd.Flags().String(key, probe.HTTPEndpoint, util.WrapString("The endpoint used when --ssl is not set"))

	key = "https-endpoint"
	RunCmd.Flags().String(key, probe.HTTPSEndpoint, util.WrapString("The endpoint used when --ssl is set"))

	key = "lookup"
	RunCmd.Flags().String(key, probe.DefaultLookupName, util.WrapString("The name of the echo component"))

	key = "initial-context-factory"
	RunCmd.Flags().String(key, naming.WildFlyInitialContextFactory, util.WrapString("The naming context implementation (only the WildFly factory is supported)"))

	key = "metrics-out"
	RunCmd.Flags().String(key, "", util.WrapString("Write the run metrics in Prometheus text format to this file after the run ('-' for stdout)"))

	util.SetupRPCClientFlags(RunCmd)
}

// processConfig reads the configuration from the command line flags, environment variables
// and the config file and converts them to the run configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	if err := util.ReadConfigFile(); err != nil {
		return err
	}

	if err := common.InitLoggers(viper.GetString("log-level")); err != nil {
		return err
	}

	s, err := util.GetSerializer()
	if err != nil {
		return err
	}
	runSerializer = s

	runConfig = probe.Config{
		Loops:         viper.GetInt("loops"),
		SSL:           viper.GetBool("ssl"),
		HTTPEndpoint:  viper.GetString("http-endpoint"),
		HTTPSEndpoint: viper.GetString("https-endpoint"),
		LookupName:    viper.GetString("lookup"),
	}

	return nil
}

func run(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	clientConfig := util.GetClientConfig()
	s := runSerializer

	t := http.NewHttpClientTransport()
	if err := t.Connect(*clientConfig); err != nil {
		return err
	}
	defer func() {
		_ = t.Close()
	}()

	factory := viper.GetString("initial-context-factory")
	metrics := probe.NewMetrics()
	defer metrics.Stop()

	fmt.Fprintf(out, "Endpoint: %s\n", runConfig.EndpointURL())
	fmt.Fprintf(out, "Lookup:   %s\n", runConfig.LookupName)
	fmt.Fprintf(out, "Loops:    %d\n", runConfig.Loops)
	probe.Logger.Debugf("Configuration:%s", clientConfig.String())

	runErr := probe.Run(runConfig, probe.Environment{
		Sessions: http.CurrentSessionContext(),
		Lookup: func(endpointURL, name string) (client.IEchoService, error) {
			return naming.LookupEchoService(naming.Environment{
				Factory:     factory,
				ProviderURL: endpointURL,
			}, name, t, s)
		},
		Out:     out,
		Metrics: metrics,
	})

	if metrics.Iterations() > 0 {
		fmt.Fprintln(out)
		metrics.PrintSummary(out)
	}

	if err := writeMetrics(viper.GetString("metrics-out"), out, metrics); err != nil {
		if runErr != nil {
			probe.Logger.Errorf("%v", err)
			return runErr
		}
		return err
	}

	return runErr
}

// writeMetrics exports the metrics to path, "-" means out and "" disables the export
func writeMetrics(path string, out io.Writer, metrics *probe.Metrics) error {
	switch path {
	case "":
		return nil
	case "-":
		metrics.WritePrometheus(out)
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to export metrics: %w", err)
	}
	metrics.WritePrometheus(f)
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to export metrics: %w", err)
	}
	return nil
}
