// Package reader provides Store, lazy random access to the spectra of an
// indexed mzML file.
//
// Opening a store makes one streaming pass over the document to collect
// spectrum metadata and the byte-offset index. Afterwards metadata queries
// cost no I/O, and fetching a spectrum reads only that spectrum's bytes:
//
//	store, err := reader.Open("run.mzML", reader.WithLogger(logger))
//	if err != nil { ... }
//	defer store.Close()
//
//	for md := range store.IterMetadata() {
//	    if level, _ := md.MSLevel(); level == 2 {
//	        scan, err := store.Fetch(md.ID)
//	        ...
//	    }
//	}
//
// Files whose root element is mzML rather than indexedmzML open in a degraded
// mode: metadata iteration works, fetches fail with errs.ErrNotIndexed.
package reader
