// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/reoring/goskema"
	g "github.com/reoring/goskema/dsl"

	"github.com/driftline-chat/driftline-go/batch"
)

// The schemas below describe the wire shape of each resource: field
// names as the server sends them, with only the fields every response
// carries marked required. Unknown keys are stripped rather than
// rejected so that server-side additions do not break old clients.
var (
	userSchema = g.Object().
			Field("id", g.IntOf[int]()).Required().
			Field("name", g.StringOf[string]()).Required().
			Field("email", g.StringOf[string]()).
			Field("avatar_id", g.StringOf[string]()).
			Field("timezone", g.StringOf[string]()).
			Field("bot", g.BoolOf[bool]()).
			Field("removed", g.BoolOf[bool]()).
			Field("joined_ts", g.FloatOf[float64]()).
			UnknownStrip().
			MustBuild()

	workspaceSchema = g.Object().
			Field("id", g.IntOf[int]()).Required().
			Field("name", g.StringOf[string]()).Required().
			Field("creator", g.IntOf[int]()).
			Field("default_channel", g.IntOf[int]()).
			Field("created_ts", g.FloatOf[float64]()).
			UnknownStrip().
			MustBuild()

	channelSchema = g.Object().
			Field("id", g.IntOf[int]()).Required().
			Field("workspace_id", g.IntOf[int]()).Required().
			Field("name", g.StringOf[string]()).Required().
			Field("description", g.StringOf[string]()).
			Field("creator", g.IntOf[int]()).
			Field("user_ids", g.ArrayOf[json.Number](g.NumberJSON())).
			Field("public", g.BoolOf[bool]()).
			Field("archived", g.BoolOf[bool]()).
			Field("created_ts", g.FloatOf[float64]()).
			UnknownStrip().
			MustBuild()

	threadSchema = g.Object().
			Field("id", g.IntOf[int]()).Required().
			Field("channel_id", g.IntOf[int]()).Required().
			Field("title", g.StringOf[string]()).Required().
			Field("workspace_id", g.IntOf[int]()).
			Field("content", g.StringOf[string]()).
			Field("creator", g.IntOf[int]()).
			Field("comment_count", g.IntOf[int]()).
			Field("starred", g.BoolOf[bool]()).
			Field("posted_ts", g.FloatOf[float64]()).
			Field("last_updated_ts", g.FloatOf[float64]()).
			UnknownStrip().
			MustBuild()

	commentSchema = g.Object().
			Field("id", g.IntOf[int]()).Required().
			Field("thread_id", g.IntOf[int]()).Required().
			Field("content", g.StringOf[string]()).Required().
			Field("creator", g.IntOf[int]()).
			Field("posted_ts", g.FloatOf[float64]()).
			Field("last_edited_ts", g.FloatOf[float64]()).
			UnknownStrip().
			MustBuild()

	conversationSchema = g.Object().
				Field("id", g.IntOf[int]()).Required().
				Field("workspace_id", g.IntOf[int]()).Required().
				Field("user_ids", g.ArrayOf[json.Number](g.NumberJSON())).Required().
				Field("title", g.StringOf[string]()).
				Field("message_count", g.IntOf[int]()).
				Field("archived", g.BoolOf[bool]()).
				Field("last_active_ts", g.FloatOf[float64]()).
				Field("created_ts", g.FloatOf[float64]()).
				UnknownStrip().
				MustBuild()

	messageSchema = g.Object().
			Field("id", g.IntOf[int]()).Required().
			Field("conversation_id", g.IntOf[int]()).Required().
			Field("content", g.StringOf[string]()).Required().
			Field("creator", g.IntOf[int]()).
			Field("posted_ts", g.FloatOf[float64]()).
			UnknownStrip().
			MustBuild()

	groupSchema = g.Object().
			Field("id", g.IntOf[int]()).Required().
			Field("workspace_id", g.IntOf[int]()).Required().
			Field("name", g.StringOf[string]()).Required().
			Field("description", g.StringOf[string]()).
			Field("user_ids", g.ArrayOf[json.Number](g.NumberJSON())).
			UnknownStrip().
			MustBuild()
)

// Validators handed to batch descriptors. Each checks the raw
// envelope item body against its schema, then decodes it into the
// typed resource.
var (
	validateUser             = schemaValidator[User](userSchema)
	validateUserList         = schemaListValidator[User](userSchema)
	validateWorkspace        = schemaValidator[Workspace](workspaceSchema)
	validateChannel          = schemaValidator[Channel](channelSchema)
	validateChannelList      = schemaListValidator[Channel](channelSchema)
	validateThread           = schemaValidator[Thread](threadSchema)
	validateThreadList       = schemaListValidator[Thread](threadSchema)
	validateComment          = schemaValidator[Comment](commentSchema)
	validateCommentList      = schemaListValidator[Comment](commentSchema)
	validateConversation     = schemaValidator[Conversation](conversationSchema)
	validateConversationList = schemaListValidator[Conversation](conversationSchema)
	validateMessageList      = schemaListValidator[Message](messageSchema)
	validateGroup            = schemaValidator[Group](groupSchema)
	validateGroupList        = schemaListValidator[Group](groupSchema)
)

// schemaValidator builds a batch validator for a single resource of
// type T: validate the raw body, then re-encode it into the typed
// struct so Timestamp and int64 fields decode through their own
// codecs.
func schemaValidator[T any](schema goskema.Schema[map[string]any]) batch.ValidateFunc {
	return func(ctx context.Context, raw any) (any, error) {
		if err := schema.Validate(ctx, raw); err != nil {
			return nil, err
		}
		typed, err := decodeAs[T](raw)
		if err != nil {
			return nil, err
		}
		return typed, nil
	}
}

// schemaListValidator is the list form: the body must be a JSON array
// and every element must satisfy the element schema.
func schemaListValidator[T any](elem goskema.Schema[map[string]any]) batch.ValidateFunc {
	return func(ctx context.Context, raw any) (any, error) {
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("api: expected array, got %T", raw)
		}
		for i, item := range items {
			if err := elem.Validate(ctx, item); err != nil {
				return nil, fmt.Errorf("api: item %d: %w", i, err)
			}
		}
		typed, err := decodeAs[[]T](raw)
		if err != nil {
			return nil, err
		}
		return typed, nil
	}
}

// decodeAs round-trips an already-parsed wire value into T. The input
// came from json.Unmarshal, so the marshal step cannot fail on shape.
func decodeAs[T any](raw any) (T, error) {
	var typed T
	encoded, err := json.Marshal(raw)
	if err != nil {
		return typed, fmt.Errorf("api: re-encode response: %w", err)
	}
	if err := json.Unmarshal(encoded, &typed); err != nil {
		return typed, fmt.Errorf("api: decode response: %w", err)
	}
	return typed, nil
}
