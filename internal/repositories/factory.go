package repositories

// RepositoryContainer holds all repository instances
type RepositoryContainer struct {
	UserRepo    UserRepository
	ProductRepo ProductRepository
}
