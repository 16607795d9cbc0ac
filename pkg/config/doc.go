/*
Package config loads extcopy settings.

Precedence, lowest first:

 1. built-in defaults (FIN???.html -> .ejs)
 2. a config file, either given explicitly or discovered in the working
    directory as .extcopy.hcl, .extcopy.yaml, .extcopy.yml or .extcopy.json
 3. command line flags (applied by the caller)

An HCL file looks like:

	pattern          = "FIN???.html"
	output_extension = ".ejs"
	ignore_patterns  = ["FIN000.html"]

The variables default_pattern and default_output_extension can be referenced
from HCL expressions. Unknown keys are rejected in every format.
*/
package config
