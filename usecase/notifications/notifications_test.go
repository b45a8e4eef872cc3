package notifications

import (
	"context"
	"strings"
	"testing"

	"github.com/cantina/adminctl/api/transport"
	"github.com/cantina/adminctl/domain"
)

type fakeCaller struct {
	result   transport.Result
	calls    int
	lastBody interface{}
}

func (f *fakeCaller) answer(body interface{}) transport.Result {
	f.calls++
	f.lastBody = body
	return f.result
}

func (f *fakeCaller) Get(ctx context.Context, endpoint string, opts *transport.Options) transport.Result {
	return f.answer(nil)
}
func (f *fakeCaller) Post(ctx context.Context, endpoint string, body interface{}, opts *transport.Options) transport.Result {
	return f.answer(body)
}
func (f *fakeCaller) Put(ctx context.Context, endpoint string, body interface{}, opts *transport.Options) transport.Result {
	return f.answer(body)
}
func (f *fakeCaller) Patch(ctx context.Context, endpoint string, body interface{}, opts *transport.Options) transport.Result {
	return f.answer(body)
}
func (f *fakeCaller) Delete(ctx context.Context, endpoint string, opts *transport.Options) transport.Result {
	return f.answer(nil)
}
func (f *fakeCaller) PostForm(ctx context.Context, endpoint string, form *transport.Form) transport.Result {
	return f.answer(form)
}

func okCreate() transport.Result {
	return transport.Result{Success: true, StatusCode: 200, Data: map[string]interface{}{
		"id": "n1", "title": "T", "body": "B", "targetTier": "all", "type": "general",
	}}
}

func TestCreate_TitleLengthBoundary(t *testing.T) {
	client := &fakeCaller{result: okCreate()}
	uc := New(client, nil, nil)
	ctx := context.Background()

	tooLong := strings.Repeat("x", 101)
	if _, err := uc.Create(ctx, CreateParams{Title: tooLong, Body: "b"}); err == nil {
		t.Error("101-character title must be rejected")
	}
	if client.calls != 0 {
		t.Error("rejected input must not reach the network")
	}

	exact := strings.Repeat("x", 100)
	if _, err := uc.Create(ctx, CreateParams{Title: exact, Body: "b"}); err != nil {
		t.Errorf("100-character title rejected: %v", err)
	}
	if client.calls != 1 {
		t.Errorf("calls = %d", client.calls)
	}

	// the limit counts characters, not bytes
	multibyte := strings.Repeat("ñ", 100)
	if _, err := uc.Create(ctx, CreateParams{Title: multibyte, Body: "b"}); err != nil {
		t.Errorf("100-character multibyte title rejected: %v", err)
	}
	if client.calls != 2 {
		t.Errorf("calls = %d", client.calls)
	}
	if _, err := uc.Create(ctx, CreateParams{Title: multibyte + "ñ", Body: "b"}); err == nil {
		t.Error("101-character multibyte title must be rejected")
	}
	if client.calls != 2 {
		t.Error("rejected input must not reach the network")
	}
}

func TestCreate_BodyLengthBoundary(t *testing.T) {
	client := &fakeCaller{result: okCreate()}
	uc := New(client, nil, nil)
	ctx := context.Background()

	if _, err := uc.Create(ctx, CreateParams{Title: "t", Body: strings.Repeat("x", 501)}); err == nil {
		t.Error("501-character body must be rejected")
	}
	if client.calls != 0 {
		t.Error("rejected input must not reach the network")
	}

	if _, err := uc.Create(ctx, CreateParams{Title: "t", Body: strings.Repeat("x", 500)}); err != nil {
		t.Errorf("500-character body rejected: %v", err)
	}

	if _, err := uc.Create(ctx, CreateParams{Title: "t", Body: strings.Repeat("é", 500)}); err != nil {
		t.Errorf("500-character multibyte body rejected: %v", err)
	}
}

func TestCreate_TrimsBeforeValidation(t *testing.T) {
	client := &fakeCaller{result: okCreate()}
	uc := New(client, nil, nil)
	ctx := context.Background()

	// whitespace-only fields are empty after the trim
	if _, err := uc.Create(ctx, CreateParams{Title: "   ", Body: "b"}); err == nil {
		t.Error("blank title must be rejected")
	}
	if _, err := uc.Create(ctx, CreateParams{Title: "t", Body: "\n\t "}); err == nil {
		t.Error("blank body must be rejected")
	}
	if client.calls != 0 {
		t.Error("rejected input must not reach the network")
	}

	// padding does not count against the limit
	padded := "  " + strings.Repeat("x", 100) + "  "
	if _, err := uc.Create(ctx, CreateParams{Title: padded, Body: "b"}); err != nil {
		t.Errorf("padded title rejected: %v", err)
	}
	sent := client.lastBody.(CreateParams)
	if sent.Title != strings.Repeat("x", 100) {
		t.Errorf("title sent untrimmed: %q", sent.Title)
	}
}

func TestCreate_Defaults(t *testing.T) {
	client := &fakeCaller{result: okCreate()}
	uc := New(client, nil, nil)

	if _, err := uc.Create(context.Background(), CreateParams{Title: "t", Body: "b"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	sent := client.lastBody.(CreateParams)
	if sent.TargetTier != domain.TierAll {
		t.Errorf("TargetTier = %q, want all", sent.TargetTier)
	}
	if sent.Type != domain.NotificationTypeGeneral {
		t.Errorf("Type = %q, want general", sent.Type)
	}
}

func TestCreate_ExplicitTierKept(t *testing.T) {
	client := &fakeCaller{result: okCreate()}
	uc := New(client, nil, nil)

	params := CreateParams{Title: "t", Body: "b", TargetTier: domain.TierAnejo, Type: "event"}
	if _, err := uc.Create(context.Background(), params); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	sent := client.lastBody.(CreateParams)
	if sent.TargetTier != domain.TierAnejo || sent.Type != "event" {
		t.Errorf("sent = %+v", sent)
	}
}

func TestList_Defaults(t *testing.T) {
	client := &fakeCaller{result: transport.Result{Success: true, Data: map[string]interface{}{
		"notifications": []interface{}{},
	}}}
	uc := New(client, nil, nil)

	result, err := uc.List(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	sent := client.lastBody.(map[string]interface{})
	if sent["status"] != "all" {
		t.Errorf("status = %v, want all", sent["status"])
	}
	if sent["page"] != 1 || sent["limit"] != 50 {
		t.Errorf("paging = %v/%v", sent["page"], sent["limit"])
	}
	if result.Pagination.Page != 1 || result.Pagination.Limit != 50 {
		t.Errorf("pagination defaults = %+v", result.Pagination)
	}
}

func TestList_RemoteFailure(t *testing.T) {
	client := &fakeCaller{result: transport.Failure("boom")}
	uc := New(client, nil, nil)

	if _, err := uc.List(context.Background(), ListParams{}); err == nil {
		t.Error("expected an error")
	}
}
