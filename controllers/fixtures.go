package controllers

import (
	"time"

	"github.com/LoreKeep/models"
)

// Test fixture data for use in tests

const (
	mockCommunityID    int64 = 100200300400
	mockVerifierRoleID int64 = 700800900
)

// MockMember creates a sample community member for testing
func MockMember() models.Member {
	return models.Member{
		Member_ID:    111222333,
		Community_ID: mockCommunityID,
		Role_IDs:     []int64{1010, 2020},
		Admin:        false,
	}
}

// MockVerifier creates a member holding the configured verifier role
func MockVerifier() models.Member {
	return models.Member{
		Member_ID:    444555666,
		Community_ID: mockCommunityID,
		Role_IDs:     []int64{1010, mockVerifierRoleID},
		Admin:        false,
	}
}

// MockAdminMember creates a community admin for testing
func MockAdminMember() models.Member {
	return models.Member{
		Member_ID:    999888777,
		Community_ID: mockCommunityID,
		Role_IDs:     []int64{1010},
		Admin:        true,
	}
}

// MockConfig creates a fully configured community for testing
func MockConfig() models.Config {
	loreChannel := int64(1111)
	momentChannel := int64(2222)
	verificationChannel := int64(3333)
	verifierRole := mockVerifierRoleID
	return models.Config{
		Config_ID:               1,
		Community_ID:            mockCommunityID,
		Lore_Channel_ID:         &loreChannel,
		Moment_Channel_ID:       &momentChannel,
		Verification_Channel_ID: &verificationChannel,
		Verifier_Role_ID:        &verifierRole,
		Datetime_Create:         time.Now(),
		Datetime_Update:         time.Now(),
	}
}
