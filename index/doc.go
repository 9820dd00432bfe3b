// Package index builds the id→byte-offset tables of an indexed mzML file.
//
// An indexed mzML file ends with an <indexList> holding one <index> per
// element kind:
//
//	<indexList count="2">
//	  <index name="spectrum">
//	    <offset idRef="scan=1">4826</offset>
//	    ...
//	  </index>
//	  <index name="chromatogram">
//	    <offset idRef="TIC">240531</offset>
//	  </index>
//	</indexList>
//
// Some writers emit a single bare <index> instead of the list; the envelope
// parser normalizes both forms into a []Section before calling Build.
//
// Duplicate ids within one section are resolved last-wins. The format's
// producers have not specified the intended behavior, so this matches what
// existing readers do; Table.Duplicates reports how often it happened.
package index
