package domain

import "testing"

func TestDefaultCatalogPreservesDeclarationOrder(t *testing.T) {
	catalog := DefaultCatalog()

	rows := catalog.Keywords()
	if len(rows) != 8 {
		t.Fatalf("expected 8 keyword rows, got %d", len(rows))
	}
	if rows[0].Type != DocPassport || rows[7].Type != DocProofOfAddress {
		t.Fatalf("unexpected keyword order: first=%s last=%s", rows[0].Type, rows[7].Type)
	}

	docs, ok := catalog.RequiredDocuments("individual_basic")
	if !ok {
		t.Fatalf("expected individual_basic set")
	}
	if len(docs) != 2 || docs[0] != DocPassport || docs[1] != DocUtilityBill {
		t.Fatalf("unexpected individual_basic documents: %v", docs)
	}
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	catalog := DefaultCatalog()

	docs, _ := catalog.RequiredDocuments("business")
	docs[0] = DocUnknown
	rows := catalog.Keywords()
	rows[0].Keywords[0] = "tampered"

	again, _ := catalog.RequiredDocuments("business")
	if again[0] != DocPassport {
		t.Fatalf("requirement set mutated through accessor: %v", again)
	}
	if catalog.Keywords()[0].Keywords[0] != "passport" {
		t.Fatalf("keyword table mutated through accessor")
	}
}

func TestRequiredDocumentsUnknownSet(t *testing.T) {
	docs, ok := DefaultCatalog().RequiredDocuments("nonexistent_set")
	if ok || docs != nil {
		t.Fatalf("expected miss for unknown set, got ok=%v docs=%v", ok, docs)
	}
}

func TestNewCatalogRejectsInvalidTables(t *testing.T) {
	cases := []struct {
		name     string
		keywords []TypeKeywords
		sets     []RequirementSet
	}{
		{name: "empty table"},
		{
			name:     "unknown owns keywords",
			keywords: []TypeKeywords{{Type: DocUnknown, Keywords: []string{"x"}}},
		},
		{
			name:     "empty keywords",
			keywords: []TypeKeywords{{Type: DocPassport}},
		},
		{
			name: "duplicate type",
			keywords: []TypeKeywords{
				{Type: DocPassport, Keywords: []string{"passport"}},
				{Type: DocPassport, Keywords: []string{"visa"}},
			},
		},
		{
			name:     "duplicate document in set",
			keywords: []TypeKeywords{{Type: DocPassport, Keywords: []string{"passport"}}},
			sets:     []RequirementSet{{ID: "dup", Documents: []DocumentType{DocPassport, DocPassport}}},
		},
		{
			name:     "error type in set",
			keywords: []TypeKeywords{{Type: DocPassport, Keywords: []string{"passport"}}},
			sets:     []RequirementSet{{ID: "bad", Documents: []DocumentType{DocError}}},
		},
		{
			name:     "duplicate set id",
			keywords: []TypeKeywords{{Type: DocPassport, Keywords: []string{"passport"}}},
			sets: []RequirementSet{
				{ID: "a", Documents: []DocumentType{DocPassport}},
				{ID: "a", Documents: []DocumentType{DocPassport}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(tc.keywords, tc.sets)
			if !IsKind(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}
