package contactsync

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitdesk/pkg/github"
)

func TestBuildPayload(t *testing.T) {
	payload := BuildPayload(johnDoe())

	require.NotNil(t, payload.Name)
	require.NotNil(t, payload.Email)
	require.NotNil(t, payload.TwitterID)
	assert.Equal(t, "John Doe", *payload.Name)
	assert.Equal(t, "john.doe@example.com", *payload.Email)
	assert.Equal(t, "johndoe", *payload.TwitterID)
	assert.Equal(t, "", payload.Phone)
	assert.Equal(t, "", payload.Mobile)
	assert.Equal(t, "123456", payload.UniqueExternalID)

	require.NotNil(t, payload.CustomFields.GitHubLogin)
	assert.Equal(t, "john_doe", *payload.CustomFields.GitHubLogin)
	assert.Equal(t, "ABC Company", *payload.CustomFields.GitHubCompany)
	assert.Equal(t, "New York", *payload.CustomFields.GitHubLocation)
}

func TestBuildPayloadJSON(t *testing.T) {
	data, err := json.Marshal(BuildPayload(johnDoe()))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name": "John Doe",
		"email": "john.doe@example.com",
		"phone": "",
		"mobile": "",
		"twitter_id": "johndoe",
		"unique_external_id": "123456",
		"custom_fields": {
			"github_login": "john_doe",
			"github_company": "ABC Company",
			"github_location": "New York"
		}
	}`, string(data))
}

func TestBuildPayloadAbsentFields(t *testing.T) {
	payload := BuildPayload(&github.User{Login: "ghost", ID: 10137})

	assert.Nil(t, payload.Name)
	assert.Nil(t, payload.Email)
	assert.Nil(t, payload.TwitterID)
	assert.Nil(t, payload.CustomFields.GitHubCompany)
	assert.Nil(t, payload.CustomFields.GitHubLocation)
	assert.Equal(t, "10137", payload.UniqueExternalID)
	require.NotNil(t, payload.CustomFields.GitHubLogin)
	assert.Equal(t, "ghost", *payload.CustomFields.GitHubLogin)
}

func TestBuildPayloadDoesNotAliasUser(t *testing.T) {
	user := johnDoe()
	payload := BuildPayload(user)

	user.Name = "Changed"
	assert.Equal(t, "John Doe", *payload.Name)
}
