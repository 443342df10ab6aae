package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	u := &User{Username: "alice", Password: "correct-horse-battery"}

	require.NoError(t, u.HashPassword())
	require.NotEqual(t, "correct-horse-battery", u.Password, "password must not be stored in plaintext")

	require.True(t, u.CheckPassword("correct-horse-battery"))
	require.False(t, u.CheckPassword("wrong-password"))
	require.False(t, u.CheckPassword(""))
}

func TestHoldings(t *testing.T) {
	u := &User{Username: "bob"}
	require.Equal(t, 0, u.Holdings("AAPL"), "nil portfolio means no shares")

	u.Portfolio = map[string]int{"AAPL": 12}
	require.Equal(t, 12, u.Holdings("AAPL"))
	require.Equal(t, 0, u.Holdings("GOOGL"))
}

func TestIsAdmin(t *testing.T) {
	require.True(t, (&User{UserType: RoleAdmin}).IsAdmin())
	require.False(t, (&User{UserType: RoleCustomer}).IsAdmin())
}
