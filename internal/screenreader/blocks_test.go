package screenreader

import "testing"

func noWrap(int) bool { return false }

func TestExtractContentBlocksBasic(t *testing.T) {
	rows := []string{
		"⏺ Working on it",
		"⎿ Read 10 lines",
		"some trailing chrome",
	}
	blocks := ExtractContentBlocks(rows, noWrap, 3)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].Marker != MarkerPrimary || blocks[0].Text != "Working on it" {
		t.Errorf("block 0 = %+v", blocks[0])
	}
	if blocks[1].Marker != MarkerSub || blocks[1].Text != "Read 10 lines" {
		t.Errorf("block 1 = %+v", blocks[1])
	}
}

func TestExtractContentBlocksBlankDoesNotClose(t *testing.T) {
	rows := []string{
		"⏺ First line",
		"",
		"  continued indented",
	}
	blocks := ExtractContentBlocks(rows, noWrap, 3)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].Text != "First line continued indented" {
		t.Errorf("text = %q", blocks[0].Text)
	}
}

func TestExtractContentBlocksWrappedRowAppends(t *testing.T) {
	rows := []string{
		"⏺ First part",
		"second part",
	}
	wrapped := func(row int) bool { return row == 1 }
	blocks := ExtractContentBlocks(rows, wrapped, 2)
	if len(blocks) != 1 || blocks[0].Text != "First part second part" {
		t.Fatalf("got %+v", blocks)
	}
}

func TestExtractContentBlocksNonIndentedCloses(t *testing.T) {
	rows := []string{
		"⏺ First block",
		"not indented, new chrome",
	}
	blocks := ExtractContentBlocks(rows, noWrap, 2)
	if len(blocks) != 1 || blocks[0].Text != "First block" {
		t.Fatalf("got %+v", blocks)
	}
}
