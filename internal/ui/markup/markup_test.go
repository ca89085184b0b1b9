package markup

import (
	"strings"
	"testing"
)

func TestStripRemovesTags(t *testing.T) {
	got := Strip("彼の<u>曖昧</u>な態度")
	if got != "彼の曖昧な態度" {
		t.Errorf("unexpected strip result: %q", got)
	}
}

func TestStripUnknownTags(t *testing.T) {
	got := Strip(`次の<span class="x">文</span>を読みなさい`)
	if got != "次の文を読みなさい" {
		t.Errorf("unexpected strip result: %q", got)
	}
}

func TestStripEntities(t *testing.T) {
	got := Strip("A &amp; B &lt;C&gt;")
	if got != "A & B <C>" {
		t.Errorf("unexpected strip result: %q", got)
	}
}

func TestRenderKeepsContent(t *testing.T) {
	body := "彼の<u>杜撰</u>な計画は<b>必ず</b>失敗する。"
	got := Render(body)
	for _, want := range []string{"彼の", "杜撰", "な計画は", "必ず", "失敗する。"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered output missing %q: %q", want, got)
		}
	}
	if strings.Contains(got, "<u>") || strings.Contains(got, "</u>") {
		t.Errorf("rendered output still contains raw tags: %q", got)
	}
}

func TestRenderUnclosedTagStripped(t *testing.T) {
	got := Render("読みとして<u>正しいもの")
	if strings.Contains(got, "<") {
		t.Errorf("unclosed tag should be stripped: %q", got)
	}
	if !strings.Contains(got, "正しいもの") {
		t.Errorf("content lost: %q", got)
	}
}
