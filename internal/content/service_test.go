// AngelaMos | 2026
// service_test.go

package content

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptacademy/platform-api/internal/core"
)

type memoryRepo struct {
	libraries map[string]*Library
	contents  map[string]*Content
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		libraries: map[string]*Library{},
		contents:  map[string]*Content{},
	}
}

func (m *memoryRepo) CreateLibrary(_ context.Context, lib *Library) error {
	cp := *lib
	m.libraries[lib.ID] = &cp
	return nil
}

func (m *memoryRepo) GetLibrary(
	_ context.Context,
	id string,
) (*Library, error) {
	if lib, ok := m.libraries[id]; ok {
		cp := *lib
		return &cp, nil
	}
	return nil, core.ErrNotFound
}

func (m *memoryRepo) ListLibraries(_ context.Context) ([]Library, error) {
	var out []Library
	for _, lib := range m.libraries {
		out = append(out, *lib)
	}
	return out, nil
}

func (m *memoryRepo) UpdateLibrary(_ context.Context, lib *Library) error {
	if _, ok := m.libraries[lib.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *lib
	m.libraries[lib.ID] = &cp
	return nil
}

func (m *memoryRepo) DeleteLibrary(_ context.Context, id string) error {
	if _, ok := m.libraries[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.libraries, id)
	return nil
}

func (m *memoryRepo) LibraryExistsByTitle(
	_ context.Context,
	title string,
) (bool, error) {
	for _, lib := range m.libraries {
		if strings.EqualFold(lib.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) CreateContent(_ context.Context, c *Content) error {
	cp := *c
	m.contents[c.ID] = &cp
	return nil
}

func (m *memoryRepo) GetContent(
	_ context.Context,
	id string,
) (*Content, error) {
	if c, ok := m.contents[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, core.ErrNotFound
}

func (m *memoryRepo) ListByLibrary(
	_ context.Context,
	libraryID string,
) ([]Content, error) {
	var out []Content
	for _, c := range m.contents {
		if c.LibraryID == libraryID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memoryRepo) UpdateContent(_ context.Context, c *Content) error {
	if _, ok := m.contents[c.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *c
	m.contents[c.ID] = &cp
	return nil
}

func (m *memoryRepo) DeleteContent(_ context.Context, id string) error {
	if _, ok := m.contents[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.contents, id)
	return nil
}

func (m *memoryRepo) ContentExistsByTitle(
	_ context.Context,
	title string,
) (bool, error) {
	for _, c := range m.contents {
		if strings.EqualFold(c.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateLibraryDuplicateTitle(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.CreateLibrary(ctx, CreateLibraryRequest{
		Title: "Prompt Patterns",
		Level: "beginner",
	})
	require.NoError(t, err)

	_, err = svc.CreateLibrary(ctx, CreateLibraryRequest{
		Title: "prompt patterns",
		Level: "advanced",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTitleExists)
}

func TestCreateContentUnknownLibrary(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.CreateContent(context.Background(), CreateContentRequest{
		LibraryID: "missing-library",
		Title:     "Zero-shot summarization",
		Prompt:    "Summarize the following text.",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestContentLifecycle(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	lib, err := svc.CreateLibrary(ctx, CreateLibraryRequest{
		Title: "Prompt Patterns",
		Level: "beginner",
	})
	require.NoError(t, err)

	created, err := svc.CreateContent(ctx, CreateContentRequest{
		LibraryID: lib.ID,
		Title:     "Zero-shot summarization",
		Prompt:    "Summarize the following text.",
	})
	require.NoError(t, err)

	items, err := svc.ListByLibrary(ctx, lib.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)

	newPrompt := "Summarize in three bullet points."
	updated, err := svc.UpdateContent(ctx, created.ID, UpdateContentRequest{
		Prompt: &newPrompt,
	})
	require.NoError(t, err)
	assert.Equal(t, newPrompt, updated.Prompt)

	require.NoError(t, svc.DeleteContent(ctx, created.ID))
	_, err = svc.GetContent(ctx, created.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
