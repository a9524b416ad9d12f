package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request RegisterRequest
		wantErr bool
	}{
		{
			name: "valid request",
			request: RegisterRequest{
				FullName: "Daniela Rivera",
				Email:    "daniela@example.com",
				Password: "password123",
			},
			wantErr: false,
		},
		{
			name: "missing name",
			request: RegisterRequest{
				Email:    "daniela@example.com",
				Password: "password123",
			},
			wantErr: true,
		},
		{
			name: "invalid email",
			request: RegisterRequest{
				FullName: "Daniela Rivera",
				Email:    "not-an-email",
				Password: "password123",
			},
			wantErr: true,
		},
		{
			name: "short password",
			request: RegisterRequest{
				FullName: "Daniela Rivera",
				Email:    "daniela@example.com",
				Password: "short",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateProfileRequest_Validation(t *testing.T) {
	valid := UpdateProfileRequest{
		FullName:        "Daniela Rivera",
		TargetRole:      "Backend Engineer",
		ExperienceLevel: "senior",
	}
	assert.NoError(t, valid.Validate())

	badLevel := valid
	badLevel.ExperienceLevel = "principal"
	assert.Error(t, badLevel.Validate())

	noName := valid
	noName.FullName = ""
	assert.Error(t, noName.Validate())
}

func TestCreateVersionRequest_Validation(t *testing.T) {
	valid := CreateVersionRequest{ContentRaw: "Experience\n- Built things"}
	assert.NoError(t, valid.Validate())

	withConfidence := valid
	withConfidence.ParsingConfidence = "high"
	assert.NoError(t, withConfidence.Validate())

	badConfidence := valid
	badConfidence.ParsingConfidence = "certain"
	assert.Error(t, badConfidence.Validate())

	empty := CreateVersionRequest{}
	assert.Error(t, empty.Validate())
}

func TestIngestJobRequest_Validation(t *testing.T) {
	assert.NoError(t, (&IngestJobRequest{URL: "https://example.com/jobs/1"}).Validate())
	assert.Error(t, (&IngestJobRequest{URL: "not a url"}).Validate())
	assert.Error(t, (&IngestJobRequest{}).Validate())
}

func TestUpdateApplicationStatusRequest_Validation(t *testing.T) {
	for _, status := range []string{"wishlist", "applied", "screening", "interview", "offer", "rejected", "accepted", "declined", "withdrawn"} {
		req := UpdateApplicationStatusRequest{Status: status}
		assert.NoError(t, req.Validate(), status)
	}

	assert.Error(t, (&UpdateApplicationStatusRequest{Status: "ghosted"}).Validate())
	assert.Error(t, (&UpdateApplicationStatusRequest{}).Validate())
}

func TestEvaluateResponseRequest_Validation(t *testing.T) {
	score := float32(0.9)
	valid := EvaluateResponseRequest{
		ResponseID:       "550e8400-e29b-41d4-a716-446655440000",
		EvaluatorType:    "human",
		HelpfulnessScore: &score,
	}
	assert.NoError(t, valid.Validate())

	outOfRange := float32(1.5)
	bad := valid
	bad.HelpfulnessScore = &outOfRange
	assert.Error(t, bad.Validate())

	badEvaluator := valid
	badEvaluator.EvaluatorType = "robot"
	assert.Error(t, badEvaluator.Validate())
}

func TestLoginResponse_JSONRoundTrip(t *testing.T) {
	resp := LoginResponse{
		User:  &User{Email: "daniela@example.com", FullName: "Daniela Rivera"},
		Token: "token-value",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded LoginResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, resp.Token, decoded.Token)
	assert.Equal(t, resp.User.Email, decoded.User.Email)
}
