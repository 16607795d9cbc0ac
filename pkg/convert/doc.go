/*
Package convert copies files matching a glob to siblings with a new extension.

	+-------------+
	|    Match    |
	| (doublestar)|
	+------+------+
	       |
	+------+------+
	|   Convert   |
	|  per file   |
	+------+------+
	       |
	+------+------+
	|   Report    |
	| (log+Result)|
	+-------------+

🔄 Flow:

 1. Resolve the pattern against the injected filesystem (regular files only,
    names starting with a dot only when the pattern asks for them)
 2. Drop anything hit by an ignore pattern
 3. For each match derive the target, read the source, check it is UTF-8 and
    write the same bytes to the target through a temp file and rename
 4. Report each file as it finishes

Targets are overwritten without confirmation and keep their previous
permissions. Sources are never modified.

A failure on one file is logged and recorded on its Result, and the batch
moves on to the next file. Convert only returns an error when the batch
cannot start (bad pattern or extension) or ctx is done between files.

🔍 Example:

	conv, err := convert.New(convert.Options{
		Fs:     afero.NewBasePathFs(afero.NewOsFs(), dir),
		Logger: log.New(os.Stdout),
	})
	report, err := conv.Convert(ctx, "FIN???.html", ".ejs")
*/
package convert
