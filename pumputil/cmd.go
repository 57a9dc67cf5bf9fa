/*
Copyright © 2026 the PumpSim authors.
This file is part of PumpSim.

PumpSim is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PumpSim is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PumpSim.  If not, see <http://www.gnu.org/licenses/>.
*/

package pumputil

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ctessum/gobra"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/spatialmodel/pumpsim"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	pointFlags := []*pflag.FlagSet{pointCmd.Flags(), curveCmd.Flags(), mapCmd.Flags()}
	plotFlags := []*pflag.FlagSet{curveCmd.Flags(), mapCmd.Flags()}

	// Options are the configuration options available to PumpSim.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel specifies the minimum level of status messages to
              print. Valid values are debug, info, warning, and error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "FluidData",
			usage: `
              FluidData is the path to a TOML file of tabulated fluid
              properties. If it is empty, the built-in data are used.
              The path can include environment variables.`,
			defaultVal: "",
			flagsets:   append([]*pflag.FlagSet{fluidsCmd.Flags()}, pointFlags...),
		},
		{
			name: "CacheSize",
			usage: `
              CacheSize is the number of fluid property lookups to keep in
              memory. Set it to 0 to disable caching.`,
			defaultVal: 1000,
			flagsets:   pointFlags,
		},
		{
			name: "Components",
			usage: `
              Components lists the mixture components in the format
              Fluid:fraction. The mole fractions are normalized before they
              are used. Common formulas such as CO2 are accepted as
              fluid names.`,
			shorthand:  "c",
			defaultVal: []string{"Water:1.0"},
			flagsets:   pointFlags,
		},
		{
			name: "Temperature",
			usage: `
              Temperature is the fluid temperature [K].`,
			shorthand:  "T",
			defaultVal: 298.15,
			flagsets:   pointFlags,
		},
		{
			name: "Pressure",
			usage: `
              Pressure is the fluid pressure [Pa].`,
			shorthand:  "P",
			defaultVal: 101325.0,
			flagsets:   pointFlags,
		},
		{
			name: "FlowRate",
			usage: `
              FlowRate is the volumetric flow rate at the design point [m³/s].`,
			shorthand:  "Q",
			defaultVal: 0.1,
			flagsets:   pointFlags,
		},
		{
			name: "Head",
			usage: `
              Head is the pump head at the design point [m].`,
			shorthand:  "H",
			defaultVal: 50.0,
			flagsets:   pointFlags,
		},
		{
			name: "Pump.ImpellerDiameter",
			usage: `
              Pump.ImpellerDiameter is the impeller diameter [m].`,
			defaultVal: 0.3,
			flagsets:   pointFlags,
		},
		{
			name: "Pump.Speed",
			usage: `
              Pump.Speed is the rotational speed at the design point [rpm].`,
			defaultVal: 1750.0,
			flagsets:   pointFlags,
		},
		{
			name: "Pump.Efficiency",
			usage: `
              Pump.Efficiency is the hydraulic efficiency, between 0 and 1.`,
			defaultVal: pumpsim.DefaultEfficiency,
			flagsets:   pointFlags,
		},
		{
			name: "Curve.Points",
			usage: `
              Curve.Points is the number of flow rates between 0.1 and 1.5
              times the design flow rate at which to calculate the design curve.`,
			defaultVal: 50,
			flagsets:   []*pflag.FlagSet{curveCmd.Flags()},
		},
		{
			name: "Curve.HeadLaw",
			usage: `
              Curve.HeadLaw is an expression for the head [m] as a function of
              flow rate Q, design flow rate Qd, and design head Hd. If it is
              empty, "Hd * (1.2 - 0.8 * (Q/Qd)**2)" is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{curveCmd.Flags()},
		},
		{
			name: "Map.SpeedLines",
			usage: `
              Map.SpeedLines is the number of speeds between 0.7 and 1.3 times
              the design speed at which to calculate the performance map.`,
			defaultVal: 5,
			flagsets:   []*pflag.FlagSet{mapCmd.Flags()},
		},
		{
			name: "Map.FlowMin",
			usage: `
              Map.FlowMin is the lowest flow rate in the performance map [m³/s].`,
			defaultVal: 0.01,
			flagsets:   []*pflag.FlagSet{mapCmd.Flags()},
		},
		{
			name: "Map.FlowMax",
			usage: `
              Map.FlowMax is the highest flow rate in the performance map [m³/s].`,
			defaultVal: 0.2,
			flagsets:   []*pflag.FlagSet{mapCmd.Flags()},
		},
		{
			name: "Map.FlowPoints",
			usage: `
              Map.FlowPoints is the number of flow rates on each speed line.`,
			defaultVal: 30,
			flagsets:   []*pflag.FlagSet{mapCmd.Flags()},
		},
		{
			name: "Map.ReferenceHead",
			usage: `
              Map.ReferenceHead [m] scales the default performance map head law,
              ReferenceHead * (N/Nd)**2 * (1.2 - 0.8 * (Q/ReferenceFlow)**2).`,
			defaultVal: 100.0,
			flagsets:   []*pflag.FlagSet{mapCmd.Flags()},
		},
		{
			name: "Map.ReferenceFlow",
			usage: `
              Map.ReferenceFlow [m³/s] scales the default performance map head law.`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{mapCmd.Flags()},
		},
		{
			name: "Map.HeadLaw",
			usage: `
              Map.HeadLaw is an expression for the head [m] as a function of
              speed N, design speed Nd, and flow rate Q. If it is empty,
              the default head law is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{mapCmd.Flags()},
		},
		{
			name: "Parallel",
			usage: `
              Parallel specifies whether to calculate curve and map
              samples concurrently.`,
			defaultVal: false,
			flagsets:   plotFlags,
		},
		{
			name: "PlotFile",
			usage: `
              PlotFile is the path of a PNG file to plot the results to.
              If it is empty, no plot is made. The path can include
              environment variables.`,
			defaultVal: "",
			flagsets:   plotFlags,
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("PUMPSIM")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
			case []string:
				set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
			case int:
				set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(fluidsCmd)
	Root.AddCommand(pointCmd)
	Root.AddCommand(curveCmd)
	Root.AddCommand(mapCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("pumputil: problem reading configuration file: %v", err)
		}
	}
	return setLogLevel(Cfg.GetString("LogLevel"))
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "pumpsim",
	Short: "A centrifugal pump performance simulator.",
	Long: `PumpSim estimates the steady-state performance of a centrifugal pump
handling a fluid mixture, and sweeps the estimate over flow rate and speed
to produce characteristic curves and performance maps.
Use the subcommands specified below to access the model functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'PUMPSIM_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of PumpSim.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "PumpSim v%s\n", pumpsim.Version)
	},
	DisableAutoGenTag: true,
}

var fluidsCmd = &cobra.Command{
	Use:   "fluids",
	Short: "List the available fluids",
	Long: `fluids lists the fluids in the property data specified by
the FluidData configuration variable, along with their phase and the
temperature and pressure ranges where their data are valid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, table, err := PropertySource(Cfg.GetString("FluidData"), 0)
		if err != nil {
			return err
		}
		return WriteFluids(cmd.OutOrStdout(), table)
	},
	DisableAutoGenTag: true,
}

var pointCmd = &cobra.Command{
	Use:   "point",
	Short: "Calculate pump performance at the design point",
	Long: `point calculates the properties of the mixture specified by the
Components configuration variable and the performance of the pump at the
design point, and prints a report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mix, p, err := EvaluatePoint(Cfg)
		if err != nil {
			return err
		}
		return WriteReport(cmd.OutOrStdout(), mix, p)
	},
	DisableAutoGenTag: true,
}

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Calculate the pump design curve",
	Long: `curve calculates the head, shaft power, efficiency, and required NPSH
of the pump over a range of flow rates around the design point, and
optionally plots them to the file specified by PlotFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, p, err := EvaluatePoint(Cfg)
		if err != nil {
			return err
		}
		o, err := curveOptions(Cfg)
		if err != nil {
			return err
		}
		c, err := p.Curve(o)
		if err != nil {
			return err
		}
		Log.WithFields(logrus.Fields{
			"samples":  len(c.Flow),
			"parallel": o.Parallel,
		}).Debug("pumpsim calculated design curve")
		if err := WriteCurve(cmd.OutOrStdout(), c); err != nil {
			return err
		}
		return writePlot(Cfg.GetString("PlotFile"), func(w io.Writer) error { return PlotCurve(w, c) })
	},
	DisableAutoGenTag: true,
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Calculate the pump performance map",
	Long: `map calculates the head and shaft power of the pump over a range of
speeds and flow rates, and optionally plots them to the file specified
by PlotFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, p, err := EvaluatePoint(Cfg)
		if err != nil {
			return err
		}
		o, err := mapOptions(Cfg)
		if err != nil {
			return err
		}
		m, err := p.Map(o)
		if err != nil {
			return err
		}
		Log.WithFields(logrus.Fields{
			"speed lines": len(m.Lines),
			"parallel":    o.Parallel,
		}).Debug("pumpsim calculated performance map")
		if err := WriteMap(cmd.OutOrStdout(), m); err != nil {
			return err
		}
		return writePlot(Cfg.GetString("PlotFile"), func(w io.Writer) error { return PlotMap(w, m) })
	},
	DisableAutoGenTag: true,
}

// setConfigHandler loads the configuration file named by the config
// parameter of the request and responds with the resulting settings.
func setConfigHandler(w http.ResponseWriter, r *http.Request) {
	configFile := r.FormValue("config")
	if configFile == "" {
		http.Error(w, "pumputil: missing config parameter", http.StatusBadRequest)
		return
	}
	Root.PersistentFlags().Set("config", configFile)
	err := setConfig()
	if err != nil {
		http.Error(w, err.Error(), 204)
		return
	}
	config := make(map[string]interface{})
	for _, option := range options {
		config[option.name] = Cfg.Get(option.name)
	}
	e := json.NewEncoder(w)
	if err := e.Encode(config); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
}

// StartWebServer starts the web server.
func StartWebServer() {
	setConfig() // Ignore any errors for now.

	http.HandleFunc("/setConfig", setConfigHandler)

	Log.Info("Loading front-end...")

	for _, cmd := range []*cobra.Command{Root, versionCmd, fluidsCmd, pointCmd, curveCmd, mapCmd} {
		cmd.SilenceUsage = true // We don't want the usage messages in the GUI.
	}

	const address = "localhost:7272"
	const tmpl = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>PumpSim</title>
	<style>
		html, body {padding: 0; margin: 2% 0; font-family: sans-serif;}
		.container { max-width: 700px; margin: 0 auto; padding: 10px; }
		div[id^="gobra-"] blockquote { border-left: 3px solid #bbb; margin: .3em; color: #333; padding-left: 5px; font-size: 75%; }
		div[id^="gobra-"] code { font-weight: bold; }
		div[id^="gobra-"] input { font-family: monospace; margin-left: .2em; width: 50%; outline:none; }
		div[id^="gobra-"] pre { font-size: 85%; }
		.red-border{ border: 1px solid #c35; }
		.green-border{ border: 1px solid #3c5; }
	</style>
</head>
<body>
<div class="container">
	<h1>PumpSim</h1>
	<p>Add mixture components as Fluid:fraction, set the operating point and
	pump, and run a command below. Values loaded from the configuration file are
	shown in <font color="green">green</font>.</p>
	<div>
		{{.}}
	</div>
</div>

<script>
let allFlags = [...document.querySelectorAll('[data-name]')];
let configInput = allFlags.filter(x => x.dataset.name == "config")[0].children[0];
configInput.addEventListener("input", e => {
	fetch("http://` + address + `/setConfig?config="+configInput.value)
		.then( res => {
			if (res.status == 204) {
				configInput.classList.add("red-border");
				return;
			}
			res.json().then( data => {
				configInput.classList.remove("red-border");
				for (let f of allFlags) {
					if (!(f.dataset.name in data)) continue;
					let input = f.children[0];
					let newValue = JSON.stringify(data[f.dataset.name]).replace(/^"+|"+$/g,'');
					if (input.value != newValue) {
						input.value = newValue;
						input.classList.add("green-border");
					}
				}
			})
		})
		.catch( err => console.log("Error fetching /setConfig", err))
})
</script>
</body>
</html>`

	output := template.Must(template.New("").Parse(tmpl))
	server := gobra.Server{Root: Root, ServerAddress: address, AllowCORS: false, HTML: output}
	Log.WithFields(logrus.Fields{"address": address}).Info("Server starting...")
	open.Run("http://" + address)
	fmt.Println("If not opened automatically, please visit http://" + address)
	server.Start()
}
