// Package taxostore is the catalog of taxonomy research data: bibliographic
// references (Literature), taxonomic name acts (Taxonomy) and collected
// specimens (Sample).
//
// A Catalog owns one JSON document per record kind inside a data directory
// and exposes list, search, get, upsert and delete for each kind, identifier
// generation, collection counts and the reference graph between records.
//
// Basic usage:
//
//	cat, err := taxostore.Open(taxostore.DefaultConfig("./data"))
//	if err != nil {
//		return err
//	}
//	defer cat.Close()
//
//	lit, err := cat.UpsertLiterature(types.Literature{Title: "Beetles of Borneo"})
//	tax, err := cat.UpsertTaxonomy(types.Taxonomy{Name: "Carabus", LitID: lit.ID})
//	matches := cat.ListTaxonomy("carab")
//
// References between records are not enforced unless Config.Strict is set;
// Graph().Dangling reports the ones that do not resolve.
package taxostore
