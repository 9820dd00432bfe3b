// Command mzscan inspects indexed mzML files.
//
//	mzscan info run.mzML
//	mzscan list run.mzML --level 2
//	mzscan peaks run.mzML "controllerType=0 controllerNumber=1 scan=42"
//	mzscan chromatogram run.mzML TIC
//	mzscan sum run.mzML --concurrency 8
//	mzscan config init
//
// Settings come from mzscan.toml (see "mzscan config init"); flags override
// the file.
package main
